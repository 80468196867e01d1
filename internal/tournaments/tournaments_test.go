package tournaments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bmizerany/assert"
	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/database"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:", nil)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, points int) models.User {
	t.Helper()
	user := models.User{Username: username, Profile: models.Profile{Role: models.RoleUser, Points: points}}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func balance(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var p models.Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		t.Fatalf("failed to load profile: %v", err)
	}
	return p.Points
}

func count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func newTournament(t *testing.T, svc *Service, hostID uint, title string) *models.Tournament {
	t.Helper()
	start := time.Now().Add(7 * 24 * time.Hour)
	tr, err := svc.Create(context.Background(), hostID, CreateInput{
		Title:     title,
		Game:      "FIFA 24",
		StartDate: start,
		EndDate:   start.Add(48 * time.Hour),
		PrizePool: "$5,000",
	})
	if err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}
	return tr
}

func TestCreate(t *testing.T) {
	db := newTestDB(t)
	host := createUser(t, db, "host", 0)
	svc := NewService(db)

	tr := newTournament(t, svc, host.ID, "FIFA 24 Championship")
	assert.Equal(t, "fifa-24-championship", tr.Slug)
	assert.Equal(t, models.TournamentUpcoming, tr.Status)
	assert.Equal(t, DefaultMaxParticipants, tr.MaxParticipants)
	assert.Equal(t, host.ID, tr.CreatedByID)

	t.Run("Validation", func(t *testing.T) {
		now := time.Now()
		cases := []CreateInput{
			{Title: "", Game: "Chess", StartDate: now, EndDate: now},
			{Title: "Cup", Game: "Chess", StartDate: now, EndDate: now.Add(-time.Hour)},
			{Title: "Cup", Game: "Chess", StartDate: now, EndDate: now, Status: "paused"},
			{Title: "Cup", Game: "Chess", StartDate: now, EndDate: now, MaxParticipants: -1},
		}
		for _, in := range cases {
			if _, err := svc.Create(context.Background(), host.ID, in); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("Create(%+v) expected validation error, got %v", in, err)
			}
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		newTournament(t, svc, host.ID, "Rocket League Pro Series")
		list, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		assert.Equal(t, 2, len(list))
		assert.Equal(t, "Rocket League Pro Series", list[0].Title)
	})
}

func TestJoinLeave(t *testing.T) {
	db := newTestDB(t)
	host := createUser(t, db, "host", 0)
	user := createUser(t, db, "player", 5)
	svc := NewService(db)
	ctx := context.Background()
	tr := newTournament(t, svc, host.ID, "Warzone Battle")

	t.Run("JoinCreditsPoints", func(t *testing.T) {
		m, err := svc.Join(ctx, user.ID, tr.ID)
		if err != nil {
			t.Fatalf("Join returned error: %v", err)
		}
		assert.Equal(t, models.MembershipRegistered, m.Status)
		assert.Equal(t, 15, balance(t, db, user.ID))
		assert.Equal(t, int64(1), count(t, db, &models.Activity{}, "user_id = ? AND activity_type = ?", user.ID, models.ActivityTournamentJoin))
	})

	t.Run("DoubleJoin", func(t *testing.T) {
		_, err := svc.Join(ctx, user.ID, tr.ID)
		if !errors.Is(err, apperr.ErrDuplicateMembership) {
			t.Fatalf("expected ErrDuplicateMembership, got %v", err)
		}
		assert.Equal(t, int64(1), count(t, db, &models.Membership{}, "user_id = ?", user.ID))
		assert.Equal(t, int64(1), count(t, db, &models.Activity{}, "activity_type = ?", models.ActivityTournamentJoin))
		assert.Equal(t, 15, balance(t, db, user.ID))
	})

	t.Run("ListForUser", func(t *testing.T) {
		list, err := svc.ListForUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListForUser returned error: %v", err)
		}
		assert.Equal(t, 1, len(list))
		assert.Equal(t, "Warzone Battle", list[0].Tournament.Title)
	})

	t.Run("LeaveRestoresBalance", func(t *testing.T) {
		if err := svc.Leave(ctx, user.ID, tr.ID); err != nil {
			t.Fatalf("Leave returned error: %v", err)
		}
		assert.Equal(t, 5, balance(t, db, user.ID))
		assert.Equal(t, int64(0), count(t, db, &models.Membership{}, "user_id = ?", user.ID))

		var leave models.Activity
		db.Where("activity_type = ?", models.ActivityTournamentLeave).First(&leave)
		assert.Equal(t, -JoinPoints, leave.PointsChange)
		assert.Equal(t, "Left tournament: Warzone Battle", leave.Description)
	})

	t.Run("LeaveWhenNotEnrolled", func(t *testing.T) {
		err := svc.Leave(ctx, user.ID, tr.ID)
		if !errors.Is(err, apperr.ErrNotEnrolled) {
			t.Fatalf("expected ErrNotEnrolled, got %v", err)
		}
		assert.Equal(t, int64(1), count(t, db, &models.Activity{}, "activity_type = ?", models.ActivityTournamentLeave))
	})

	t.Run("RejoinAfterLeave", func(t *testing.T) {
		if _, err := svc.Join(ctx, user.ID, tr.ID); err != nil {
			t.Fatalf("rejoin returned error: %v", err)
		}
		assert.Equal(t, 15, balance(t, db, user.ID))
	})

	t.Run("UnknownTournament", func(t *testing.T) {
		if _, err := svc.Join(ctx, user.ID, 9999); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound on join, got %v", err)
		}
		if err := svc.Leave(ctx, user.ID, 9999); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound on leave, got %v", err)
		}
		if _, err := svc.Get(ctx, 9999); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("expected ErrNotFound on get, got %v", err)
		}
	})
}

func TestLeaveFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	host := createUser(t, db, "host", 0)
	user := createUser(t, db, "spender", 0)
	svc := NewService(db)
	ctx := context.Background()
	tr := newTournament(t, svc, host.ID, "Rocket League Pro Series")

	if _, err := svc.Join(ctx, user.ID, tr.ID); err != nil {
		t.Fatalf("Join returned error: %v", err)
	}
	// Spend part of the join bonus elsewhere.
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Update("points", 3)

	if err := svc.Leave(ctx, user.ID, tr.ID); err != nil {
		t.Fatalf("Leave returned error: %v", err)
	}
	assert.Equal(t, 0, balance(t, db, user.ID))
}
