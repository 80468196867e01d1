package auth

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware resolves the session cookie into UserIDKey and renews tokens
// past half their lifetime. Requests without a valid session pass through
// anonymously; operations reject them in Authorize.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, exp, err := h.ParseToken(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		// Sliding session
		if time.Until(exp) < TokenDuration/2 {
			newToken, err := h.GenerateToken(userID)
			if err != nil {
				zap.L().Warn("failed to renew session", zap.Uint("user_id", userID), zap.Error(err))
			} else {
				renewed := h.cookie(newToken, int(TokenDuration.Seconds()))
				http.SetCookie(w, &renewed)
			}
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
