// Package accounts stores users with their profiles and checks passwords.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/ledger"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

// PasswordCost is the bcrypt cost for new hashes. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates the user, an empty profile and the registration activity
// in one transaction.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	switch {
	case in.Username == "":
		return nil, apperr.New(apperr.CodeValidation, "Username is required.")
	case len(in.Password) < MinPasswordLength:
		return nil, apperr.Newf(apperr.CodeValidation, "Password must be at least %d characters.", MinPasswordLength)
	case in.Password != in.Password2:
		return nil, apperr.New(apperr.CodeValidation, "Passwords must match.")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Profile:      models.Profile{Role: models.RoleUser},
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&n).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if n > 0 {
			return errUsernameTaken
		}

		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errUsernameTaken
			}
			return fmt.Errorf("create user: %w", err)
		}

		_, err := ledger.Record(tx, ledger.Entry{
			UserID:      user.ID,
			Kind:        models.ActivityRegistration,
			Description: fmt.Sprintf("User %s registered", user.Username),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

var errUsernameTaken = apperr.New(apperr.CodeValidation, "A user with that username already exists.")

// Login checks the password and appends a login activity.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").
		Where("username = ?", strings.TrimSpace(username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errInvalidCredentials
	}

	if _, err := ledger.Record(s.db.WithContext(ctx), ledger.Entry{
		UserID:      user.ID,
		Kind:        models.ActivityLogin,
		Description: fmt.Sprintf("User %s logged in", user.Username),
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

var errInvalidCredentials = apperr.New(apperr.CodeUnauthorized, "Invalid credentials.")

func (s *Service) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

func (s *Service) Role(ctx context.Context, userID uint) (models.Role, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Select("role").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.New(apperr.CodeNotFound, "Profile not found")
	}
	if err != nil {
		return "", fmt.Errorf("load role: %w", err)
	}
	return profile.Role, nil
}

func (s *Service) UpdateAvatar(ctx context.Context, userID uint, avatar string) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Profile{}).Where("user_id = ?", userID).Update("avatar", avatar)
		if res.Error != nil {
			return fmt.Errorf("update avatar: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.CodeNotFound, "Profile not found")
		}

		_, err := ledger.Record(tx, ledger.Entry{
			UserID:      userID,
			Kind:        models.ActivityProfileUpdate,
			Description: "Updated profile avatar",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) SetRole(ctx context.Context, userID uint, role string) (*models.User, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, "Invalid role", err)
	}

	res := s.db.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Update("role", r)
	if res.Error != nil {
		return nil, fmt.Errorf("update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.New(apperr.CodeNotFound, "User not found")
	}
	return s.Get(ctx, userID)
}
