package auth

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/garage-arena-api/internal/accounts"
	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/config"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName    = "auth_token"
	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	cfg      *config.Config
	accounts *accounts.Service
}

func NewAuthHandler(cfg *config.Config, accts *accounts.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, accounts: accts}
}

// AuthInput is embedded by every operation that needs a session.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie (auth_token)"`
}

type UserBody struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Role      models.Role `json:"role"`
	Avatar    string      `json:"avatar"`
	Points    int         `json:"points"`
}

func NewUserBody(u *models.User) UserBody {
	return UserBody{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Profile.Role,
		Avatar:    u.Profile.Avatar,
		Points:    u.Profile.Points,
	}
}

type RegisterRequest struct {
	Body struct {
		Username  string `json:"username" required:"true" minLength:"1"`
		Email     string `json:"email,omitempty" required:"false"`
		Password  string `json:"password" required:"true"`
		Password2 string `json:"password2" required:"true" doc:"Password confirmation"`
		FirstName string `json:"first_name,omitempty" required:"false"`
		LastName  string `json:"last_name,omitempty" required:"false"`
	}
}

type LoginRequest struct {
	Body struct {
		Username string `json:"username" required:"true"`
		Password string `json:"password" required:"true"`
	}
}

type SessionResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string   `json:"message"`
		User    UserBody `json:"user"`
	}
}

type LogoutResponse struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

type MeResponse struct {
	Body UserBody
}

type UpdateMeRequest struct {
	AuthInput
	Body struct {
		Avatar string `json:"avatar" doc:"Avatar URL"`
	}
}

func (h *AuthHandler) HandleRegister(ctx context.Context, input *RegisterRequest) (*SessionResponse, error) {
	user, err := h.accounts.Register(ctx, accounts.RegisterInput{
		Username:  input.Body.Username,
		Email:     input.Body.Email,
		Password:  input.Body.Password,
		Password2: input.Body.Password2,
		FirstName: input.Body.FirstName,
		LastName:  input.Body.LastName,
	})
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return h.session(user, "User registered successfully")
}

func (h *AuthHandler) HandleLogin(ctx context.Context, input *LoginRequest) (*SessionResponse, error) {
	user, err := h.accounts.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return h.session(user, "Login successful")
}

func (h *AuthHandler) HandleLogout(ctx context.Context, input *struct{}) (*LogoutResponse, error) {
	res := &LogoutResponse{}
	res.SetCookie = h.cookie("", -1)
	res.Body.Message = "Logout successful"
	return res, nil
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeResponse, error) {
	userID, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	user, err := h.accounts.Get(ctx, userID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &MeResponse{Body: NewUserBody(user)}, nil
}

func (h *AuthHandler) HandleUpdateMe(ctx context.Context, input *UpdateMeRequest) (*MeResponse, error) {
	userID, err := h.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	user, err := h.accounts.UpdateAvatar(ctx, userID, input.Body.Avatar)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &MeResponse{Body: NewUserBody(user)}, nil
}

func (h *AuthHandler) session(user *models.User, message string) (*SessionResponse, error) {
	token, err := h.GenerateToken(user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	res := &SessionResponse{}
	res.SetCookie = h.cookie(token, int(TokenDuration.Seconds()))
	res.Body.Message = message
	res.Body.User = NewUserBody(user)
	return res, nil
}

// cookie builds the session cookie. maxAge < 0 deletes it.
func (h *AuthHandler) cookie(value string, maxAge int) http.Cookie {
	c := http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge > 0 {
		c.Expires = time.Now().Add(time.Duration(maxAge) * time.Second)
	}
	return c
}

func (h *AuthHandler) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken validates a session token and returns its user id and expiry.
func (h *AuthHandler) ParseToken(tokenString string) (uint, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid token claims")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, time.Time{}, fmt.Errorf("invalid token claims")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, time.Time{}, fmt.Errorf("token has no expiry")
	}
	return uint(userIDFloat), exp.Time, nil
}

// Authorize returns the session user. The id resolved by AuthMiddleware wins;
// otherwise the raw Cookie header is parsed.
func (h *AuthHandler) Authorize(ctx context.Context, cookieHeader string) (uint, error) {
	if userID, ok := ctx.Value(UserIDKey).(uint); ok {
		return userID, nil
	}
	if cookieHeader == "" {
		return 0, huma.Error401Unauthorized("Authentication required")
	}

	cookies, err := http.ParseCookie(cookieHeader)
	if err != nil {
		return 0, huma.Error401Unauthorized("Authentication required")
	}
	for _, c := range cookies {
		if c.Name != CookieName {
			continue
		}
		userID, _, err := h.ParseToken(c.Value)
		if err != nil {
			return 0, huma.Error401Unauthorized("Invalid token")
		}
		return userID, nil
	}
	return 0, huma.Error401Unauthorized("Authentication required")
}

// RequireRole authorizes the session and checks the user's profile role.
func (h *AuthHandler) RequireRole(ctx context.Context, cookieHeader string, roles ...models.Role) (uint, error) {
	userID, err := h.Authorize(ctx, cookieHeader)
	if err != nil {
		return 0, err
	}

	role, err := h.accounts.Role(ctx, userID)
	if err != nil {
		return 0, apperr.HTTPError(err)
	}
	if !slices.Contains(roles, role) {
		return 0, huma.Error403Forbidden("Insufficient permissions")
	}
	return userID, nil
}
