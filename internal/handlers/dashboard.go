package handlers

import (
	"context"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/ledger"
)

type DashboardHandler struct {
	reader      *ledger.Reader
	authHandler *auth.AuthHandler
}

func NewDashboardHandler(reader *ledger.Reader, authHandler *auth.AuthHandler) *DashboardHandler {
	return &DashboardHandler{reader: reader, authHandler: authHandler}
}

type DashboardResponse struct {
	Body *ledger.Dashboard
}

func (h *DashboardHandler) HandleDashboard(ctx context.Context, input *auth.AuthInput) (*DashboardResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	d, err := h.reader.Dashboard(ctx, userID)
	if err != nil {
		return nil, apperr.HTTPError(err)
	}
	return &DashboardResponse{Body: d}, nil
}
