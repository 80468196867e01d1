package handlers

import (
	"context"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"github.com/gdg-garage/garage-arena-api/internal/rewards"
)

type RewardHandler struct {
	svc         *rewards.Service
	authHandler *auth.AuthHandler
}

func NewRewardHandler(svc *rewards.Service, authHandler *auth.AuthHandler) *RewardHandler {
	return &RewardHandler{svc: svc, authHandler: authHandler}
}

type RewardListResponse struct {
	Body []models.Reward
}

type RewardResponse struct {
	Body *models.Reward
}

type CreateRewardRequest struct {
	auth.AuthInput
	Body struct {
		Title       string `json:"title" required:"true"`
		Description string `json:"description,omitempty"`
		Points      int    `json:"points" minimum:"1"`
		Category    string `json:"category,omitempty"`
		ImageURL    string `json:"image_url,omitempty"`
		Stock       int    `json:"stock" minimum:"0"`
		IsActive    *bool  `json:"is_active,omitempty" doc:"Defaults to true"`
	}
}

type ClaimRequest struct {
	auth.AuthInput
	Body struct {
		RewardID uint `json:"rewardId,omitempty"`
	}
}

type ClaimResponse struct {
	Body struct {
		Message string        `json:"message"`
		Claim   *models.Claim `json:"claim"`
	}
}

type ClaimListResponse struct {
	Body []models.Claim
}

type RestockRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Quantity int `json:"quantity" doc:"Units to add"`
	}
}

type SetActiveRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		IsActive bool `json:"is_active"`
	}
}

func (h *RewardHandler) HandleList(ctx context.Context, input *struct{}) (*RewardListResponse, error) {
	list, err := h.svc.List(ctx)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &RewardListResponse{Body: list}, nil
}

func (h *RewardHandler) HandleCreate(ctx context.Context, input *CreateRewardRequest) (*RewardResponse, error) {
	if _, err := h.authHandler.RequireRole(ctx, input.Cookie, models.RoleAdmin); err != nil {
		return nil, err
	}

	active := true
	if input.Body.IsActive != nil {
		active = *input.Body.IsActive
	}
	r, err := h.svc.Create(ctx, rewards.CreateInput{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Points:      input.Body.Points,
		Category:    input.Body.Category,
		ImageURL:    input.Body.ImageURL,
		Stock:       input.Body.Stock,
		IsActive:    active,
	})
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &RewardResponse{Body: r}, nil
}

func (h *RewardHandler) HandleClaim(ctx context.Context, input *ClaimRequest) (*ClaimResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	claim, err := h.svc.Claim(ctx, userID, input.Body.RewardID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}

	res := &ClaimResponse{}
	res.Body.Message = "Reward claimed successfully"
	res.Body.Claim = claim
	return res, nil
}

func (h *RewardHandler) HandleListMine(ctx context.Context, input *auth.AuthInput) (*ClaimListResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	list, err := h.svc.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &ClaimListResponse{Body: list}, nil
}

func (h *RewardHandler) HandleRestock(ctx context.Context, input *RestockRequest) (*RewardResponse, error) {
	if _, err := h.authHandler.RequireRole(ctx, input.Cookie, models.RoleAdmin); err != nil {
		return nil, err
	}

	r, err := h.svc.Restock(ctx, input.ID, input.Body.Quantity)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &RewardResponse{Body: r}, nil
}

func (h *RewardHandler) HandleSetActive(ctx context.Context, input *SetActiveRequest) (*RewardResponse, error) {
	if _, err := h.authHandler.RequireRole(ctx, input.Cookie, models.RoleAdmin); err != nil {
		return nil, err
	}

	r, err := h.svc.SetActive(ctx, input.ID, input.Body.IsActive)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &RewardResponse{Body: r}, nil
}
