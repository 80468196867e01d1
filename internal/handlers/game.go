package handlers

import (
	"context"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/games"
	"github.com/gdg-garage/garage-arena-api/internal/models"
)

type GameHandler struct {
	svc         *games.Service
	authHandler *auth.AuthHandler
}

func NewGameHandler(svc *games.Service, authHandler *auth.AuthHandler) *GameHandler {
	return &GameHandler{svc: svc, authHandler: authHandler}
}

type GameListResponse struct {
	Body []models.Game
}

type GameResponse struct {
	Body *models.Game
}

type SubmitGameRequest struct {
	auth.AuthInput
	Body struct {
		Title       string `json:"title" required:"true"`
		Developer   string `json:"developer" required:"true"`
		Genre       string `json:"genre" required:"true"`
		Description string `json:"description,omitempty"`
		ImageURL    string `json:"image_url,omitempty"`
	}
}

type GameStatusRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Status string `json:"status" doc:"pending, approved, testing, completed or rejected"`
	}
}

func (h *GameHandler) HandleList(ctx context.Context, input *struct{}) (*GameListResponse, error) {
	list, err := h.svc.List(ctx)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &GameListResponse{Body: list}, nil
}

func (h *GameHandler) HandleSubmit(ctx context.Context, input *SubmitGameRequest) (*GameResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	g, err := h.svc.Submit(ctx, userID, games.SubmitInput{
		Title:       input.Body.Title,
		Developer:   input.Body.Developer,
		Genre:       input.Body.Genre,
		Description: input.Body.Description,
		ImageURL:    input.Body.ImageURL,
	})
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &GameResponse{Body: g}, nil
}

func (h *GameHandler) HandleSetStatus(ctx context.Context, input *GameStatusRequest) (*GameResponse, error) {
	if _, err := h.authHandler.RequireRole(ctx, input.Cookie, models.RoleModerator, models.RoleAdmin); err != nil {
		return nil, err
	}

	g, err := h.svc.SetStatus(ctx, input.ID, input.Body.Status)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &GameResponse{Body: g}, nil
}
