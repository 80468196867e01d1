package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/garage-arena-api/internal/accounts"
	"github.com/gdg-garage/garage-arena-api/internal/auth"
	"github.com/gdg-garage/garage-arena-api/internal/config"
	"github.com/gdg-garage/garage-arena-api/internal/database"
	"github.com/gdg-garage/garage-arena-api/internal/games"
	"github.com/gdg-garage/garage-arena-api/internal/ledger"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"github.com/gdg-garage/garage-arena-api/internal/rewards"
	"github.com/gdg-garage/garage-arena-api/internal/tournaments"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, Handlers) {
	t.Helper()
	accounts.PasswordCost = bcrypt.MinCost
	db, err := database.Open(database.DriverSQLite, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	accts := accounts.NewService(db)
	authHandler := auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, accts)
	return db, Handlers{
		Auth:        authHandler,
		Tournaments: NewTournamentHandler(tournaments.NewService(db), authHandler),
		Rewards:     NewRewardHandler(rewards.NewService(db), authHandler),
		Games:       NewGameHandler(games.NewService(db), authHandler),
		Dashboard:   NewDashboardHandler(ledger.NewReader(db), authHandler),
		Users:       NewUserHandler(accts, authHandler),
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role, points int) (models.User, context.Context) {
	t.Helper()
	user := models.User{Username: username, Profile: models.Profile{Role: role, Points: points}}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user, context.WithValue(context.Background(), auth.UserIDKey, user.ID)
}

func statusOf(err error) int {
	var se huma.StatusError
	if errors.As(err, &se) {
		return se.GetStatus()
	}
	return 0
}

func balance(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var p models.Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	return p.Points
}

func TestTournamentHandlers(t *testing.T) {
	db, h := setup(t)
	_, hostCtx := createUser(t, db, "host", models.RoleHost, 300)
	player, playerCtx := createUser(t, db, "player", models.RoleUser, 5)

	req := &CreateTournamentRequest{}
	req.Body.Title = "FIFA 24 Championship"
	req.Body.Game = "FIFA 24"
	req.Body.StartDate = time.Now().Add(24 * time.Hour)
	req.Body.EndDate = time.Now().Add(48 * time.Hour)

	if _, err := h.Tournaments.HandleCreate(playerCtx, req); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for player, got %v", err)
	}

	created, err := h.Tournaments.HandleCreate(hostCtx, req)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	id := created.Body.ID

	join := &MembershipRequest{TournamentPath: TournamentPath{ID: id}}
	if _, err := h.Tournaments.HandleJoin(playerCtx, join); err != nil {
		t.Fatalf("HandleJoin returned error: %v", err)
	}
	if got := balance(t, db, player.ID); got != 15 {
		t.Errorf("expected 15 points after join, got %d", got)
	}

	if _, err := h.Tournaments.HandleJoin(playerCtx, join); statusOf(err) != http.StatusBadRequest {
		t.Errorf("expected 400 on double join, got %v", err)
	}

	mine, err := h.Tournaments.HandleListMine(playerCtx, &auth.AuthInput{})
	if err != nil {
		t.Fatalf("HandleListMine returned error: %v", err)
	}
	if len(mine.Body) != 1 || mine.Body[0].Tournament.Title != "FIFA 24 Championship" {
		t.Errorf("unexpected memberships: %+v", mine.Body)
	}

	if _, err := h.Tournaments.HandleLeave(playerCtx, join); err != nil {
		t.Fatalf("HandleLeave returned error: %v", err)
	}
	if got := balance(t, db, player.ID); got != 5 {
		t.Errorf("expected 5 points after leave, got %d", got)
	}
	if _, err := h.Tournaments.HandleLeave(playerCtx, join); statusOf(err) != http.StatusBadRequest {
		t.Errorf("expected 400 when not enrolled, got %v", err)
	}

	missing := &MembershipRequest{TournamentPath: TournamentPath{ID: 9999}}
	if _, err := h.Tournaments.HandleJoin(playerCtx, missing); statusOf(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
	if _, err := h.Tournaments.HandleJoin(context.Background(), join); statusOf(err) != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRewardHandlers(t *testing.T) {
	db, h := setup(t)
	_, adminCtx := createUser(t, db, "admin", models.RoleAdmin, 500)
	player, playerCtx := createUser(t, db, "player", models.RoleUser, 300)

	create := &CreateRewardRequest{}
	create.Body.Title = "Gaming Mouse"
	create.Body.Points = 300
	create.Body.Stock = 1
	if _, err := h.Rewards.HandleCreate(playerCtx, create); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for player, got %v", err)
	}
	reward, err := h.Rewards.HandleCreate(adminCtx, create)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	if !reward.Body.IsActive {
		t.Errorf("expected new reward to be active")
	}

	t.Run("MissingRewardID", func(t *testing.T) {
		if _, err := h.Rewards.HandleClaim(playerCtx, &ClaimRequest{}); statusOf(err) != http.StatusBadRequest {
			t.Errorf("expected 400, got %v", err)
		}
	})

	claim := &ClaimRequest{}
	claim.Body.RewardID = reward.Body.ID
	if _, err := h.Rewards.HandleClaim(playerCtx, claim); err != nil {
		t.Fatalf("HandleClaim returned error: %v", err)
	}
	if got := balance(t, db, player.ID); got != 0 {
		t.Errorf("expected 0 points, got %d", got)
	}

	if _, err := h.Rewards.HandleClaim(adminCtx, claim); statusOf(err) != http.StatusBadRequest {
		t.Errorf("expected 400 out of stock, got %v", err)
	}

	restock := &RestockRequest{ID: reward.Body.ID}
	restock.Body.Quantity = 3
	restocked, err := h.Rewards.HandleRestock(adminCtx, restock)
	if err != nil {
		t.Fatalf("HandleRestock returned error: %v", err)
	}
	if restocked.Body.Stock != 3 {
		t.Errorf("expected stock 3, got %d", restocked.Body.Stock)
	}

	if _, err := h.Rewards.HandleClaim(playerCtx, claim); statusOf(err) != http.StatusBadRequest {
		t.Errorf("expected 400 insufficient points, got %v", err)
	}

	deactivate := &SetActiveRequest{ID: reward.Body.ID}
	if _, err := h.Rewards.HandleSetActive(adminCtx, deactivate); err != nil {
		t.Fatalf("HandleSetActive returned error: %v", err)
	}
	list, err := h.Rewards.HandleList(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 0 {
		t.Errorf("expected no active rewards, got %d", len(list.Body))
	}

	mine, err := h.Rewards.HandleListMine(playerCtx, &auth.AuthInput{})
	if err != nil {
		t.Fatalf("HandleListMine returned error: %v", err)
	}
	if len(mine.Body) != 1 || mine.Body[0].Reward.Title != "Gaming Mouse" {
		t.Errorf("unexpected claims: %+v", mine.Body)
	}
}

func TestGameAndUserHandlers(t *testing.T) {
	db, h := setup(t)
	_, adminCtx := createUser(t, db, "admin", models.RoleAdmin, 0)
	player, playerCtx := createUser(t, db, "player", models.RoleUser, 0)

	submit := &SubmitGameRequest{}
	submit.Body.Title = "Battle Arena Legends"
	submit.Body.Developer = "Epic Studios"
	submit.Body.Genre = "MOBA"
	game, err := h.Games.HandleSubmit(playerCtx, submit)
	if err != nil {
		t.Fatalf("HandleSubmit returned error: %v", err)
	}
	if got := balance(t, db, player.ID); got != games.SubmissionPoints {
		t.Errorf("expected %d points, got %d", games.SubmissionPoints, got)
	}

	status := &GameStatusRequest{ID: game.Body.ID}
	status.Body.Status = "testing"
	if _, err := h.Games.HandleSetStatus(playerCtx, status); statusOf(err) != http.StatusForbidden {
		t.Errorf("expected 403 for player, got %v", err)
	}

	setRole := &SetRoleRequest{ID: player.ID}
	setRole.Body.Role = "moderator"
	if _, err := h.Users.HandleSetRole(playerCtx, setRole); statusOf(err) != http.StatusForbidden {
		t.Errorf("expected 403 for player, got %v", err)
	}
	promoted, err := h.Users.HandleSetRole(adminCtx, setRole)
	if err != nil {
		t.Fatalf("HandleSetRole returned error: %v", err)
	}
	if promoted.Body.Role != models.RoleModerator {
		t.Errorf("expected moderator, got %s", promoted.Body.Role)
	}

	updated, err := h.Games.HandleSetStatus(playerCtx, status)
	if err != nil {
		t.Fatalf("HandleSetStatus returned error: %v", err)
	}
	if updated.Body.Status != models.GameTesting {
		t.Errorf("expected testing, got %s", updated.Body.Status)
	}

	status.Body.Status = "shipped"
	if _, err := h.Games.HandleSetStatus(playerCtx, status); statusOf(err) != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid status, got %v", err)
	}

	dash, err := h.Dashboard.HandleDashboard(playerCtx, &auth.AuthInput{})
	if err != nil {
		t.Fatalf("HandleDashboard returned error: %v", err)
	}
	if dash.Body.Stats.TotalPoints != games.SubmissionPoints {
		t.Errorf("expected %d total points, got %d", games.SubmissionPoints, dash.Body.Stats.TotalPoints)
	}
	if len(dash.Body.Activity) != 1 || dash.Body.Activity[0].Kind != models.ActivityPointsEarned {
		t.Errorf("unexpected activity: %+v", dash.Body.Activity)
	}
}
