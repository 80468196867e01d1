package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"github.com/gdg-garage/garage-arena-api/internal/tournaments"
)

type TournamentHandler struct {
	svc         *tournaments.Service
	authHandler *auth.AuthHandler
}

func NewTournamentHandler(svc *tournaments.Service, authHandler *auth.AuthHandler) *TournamentHandler {
	return &TournamentHandler{svc: svc, authHandler: authHandler}
}

type TournamentPath struct {
	ID uint `path:"id" doc:"Tournament ID"`
}

type TournamentListResponse struct {
	Body []models.Tournament
}

type TournamentResponse struct {
	Body *models.Tournament
}

type CreateTournamentRequest struct {
	auth.AuthInput
	Body struct {
		Title           string    `json:"title" required:"true"`
		Game            string    `json:"game" required:"true"`
		Description     string    `json:"description,omitempty"`
		StartDate       time.Time `json:"start_date"`
		EndDate         time.Time `json:"end_date"`
		PrizePool       string    `json:"prize_pool,omitempty"`
		MaxParticipants int       `json:"max_participants,omitempty" doc:"Defaults to 100"`
		Status          string    `json:"status,omitempty" enum:"upcoming,active,completed,cancelled"`
	}
}

type MembershipRequest struct {
	auth.AuthInput
	TournamentPath
}

type MembershipListResponse struct {
	Body []models.Membership
}

type JoinResponse struct {
	Body struct {
		Message    string             `json:"message"`
		Membership *models.Membership `json:"membership"`
	}
}

func (h *TournamentHandler) HandleList(ctx context.Context, input *struct{}) (*TournamentListResponse, error) {
	list, err := h.svc.List(ctx)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &TournamentListResponse{Body: list}, nil
}

func (h *TournamentHandler) HandleGet(ctx context.Context, input *TournamentPath) (*TournamentResponse, error) {
	t, err := h.svc.Get(ctx, input.ID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &TournamentResponse{Body: t}, nil
}

func (h *TournamentHandler) HandleCreate(ctx context.Context, input *CreateTournamentRequest) (*TournamentResponse, error) {
	userID, err := h.authHandler.RequireRole(ctx, input.Cookie, models.RoleHost, models.RoleAdmin)
	if err != nil {
		return nil, err
	}

	t, err := h.svc.Create(ctx, userID, tournaments.CreateInput{
		Title:           input.Body.Title,
		Game:            input.Body.Game,
		Description:     input.Body.Description,
		StartDate:       input.Body.StartDate,
		EndDate:         input.Body.EndDate,
		PrizePool:       input.Body.PrizePool,
		MaxParticipants: input.Body.MaxParticipants,
		Status:          input.Body.Status,
	})
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &TournamentResponse{Body: t}, nil
}

func (h *TournamentHandler) HandleListMine(ctx context.Context, input *auth.AuthInput) (*MembershipListResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	list, err := h.svc.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &MembershipListResponse{Body: list}, nil
}

func (h *TournamentHandler) HandleJoin(ctx context.Context, input *MembershipRequest) (*JoinResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	m, err := h.svc.Join(ctx, userID, input.ID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}

	res := &JoinResponse{}
	res.Body.Message = "Successfully joined tournament"
	res.Body.Membership = m
	return res, nil
}

func (h *TournamentHandler) HandleLeave(ctx context.Context, input *MembershipRequest) (*MessageResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if err := h.svc.Leave(ctx, userID, input.ID); err != nil {
		return nil, apperr.HTTPError(err)
	}
	return message("Successfully left tournament"), nil
}
