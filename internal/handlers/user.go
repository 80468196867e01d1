package handlers

import (
	"context"

	"github.com/gdg-garage/garage-arena-api/internal/accounts"
	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/models"
)

type UserHandler struct {
	accounts    *accounts.Service
	authHandler *auth.AuthHandler
}

func NewUserHandler(accts *accounts.Service, authHandler *auth.AuthHandler) *UserHandler {
	return &UserHandler{accounts: accts, authHandler: authHandler}
}

type SetRoleRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Role string `json:"role" enum:"user,admin,moderator,host"`
	}
}

type UserResponse struct {
	Body auth.UserBody
}

func (h *UserHandler) HandleSetRole(ctx context.Context, input *SetRoleRequest) (*UserResponse, error) {
	if _, err := h.authHandler.RequireRole(ctx, input.Cookie, models.RoleAdmin); err != nil {
		return nil, err
	}

	user, err := h.accounts.SetRole(ctx, input.ID, input.Body.Role)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &UserResponse{Body: auth.NewUserBody(user)}, nil
}
