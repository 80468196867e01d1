package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth        *auth.AuthHandler
	Tournaments *TournamentHandler
	Rewards     *RewardHandler
	Games       *GameHandler
	Dashboard   *DashboardHandler
	Users       *UserHandler
}

func RegisterRoutes(r *chi.Mux, logger *zap.Logger, h Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(h.Auth.AuthMiddleware)

	// Initialize Huma API
	config := huma.DefaultConfig("Garage Arena API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	registerOperations(api, h)
	return api
}

func secured(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func registerOperations(api huma.API, h Handlers) {
	// Auth
	huma.Post(api, "/api/auth/register", h.Auth.HandleRegister, created)
	huma.Post(api, "/api/auth/login", h.Auth.HandleLogin)
	huma.Post(api, "/api/auth/logout", h.Auth.HandleLogout)
	huma.Get(api, "/api/auth/user", h.Auth.HandleMe, secured)
	huma.Put(api, "/api/auth/user", h.Auth.HandleUpdateMe, secured)
	huma.Put(api, "/api/users/{id}/role", h.Users.HandleSetRole, secured)

	// Tournaments
	huma.Get(api, "/api/tournaments", h.Tournaments.HandleList)
	huma.Post(api, "/api/tournaments", h.Tournaments.HandleCreate, secured, created)
	huma.Get(api, "/api/tournaments/user", h.Tournaments.HandleListMine, secured)
	huma.Get(api, "/api/tournaments/{id}", h.Tournaments.HandleGet)
	huma.Post(api, "/api/tournaments/{id}/join", h.Tournaments.HandleJoin, secured, created)
	huma.Delete(api, "/api/tournaments/{id}/leave", h.Tournaments.HandleLeave, secured)

	// Rewards
	huma.Get(api, "/api/rewards", h.Rewards.HandleList)
	huma.Post(api, "/api/rewards", h.Rewards.HandleCreate, secured, created)
	huma.Post(api, "/api/rewards/claim", h.Rewards.HandleClaim, secured, created)
	huma.Get(api, "/api/rewards/user", h.Rewards.HandleListMine, secured)
	huma.Put(api, "/api/rewards/{id}/stock", h.Rewards.HandleRestock, secured)
	huma.Put(api, "/api/rewards/{id}/active", h.Rewards.HandleSetActive, secured)

	// Games
	huma.Get(api, "/api/games", h.Games.HandleList)
	huma.Post(api, "/api/games", h.Games.HandleSubmit, secured, created)
	huma.Put(api, "/api/games/{id}/status", h.Games.HandleSetStatus, secured)

	huma.Get(api, "/api/dashboard", h.Dashboard.HandleDashboard, secured)
}
