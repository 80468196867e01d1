package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"gorm.io/gorm"
)

const RecentActivityLimit = 20

type Stats struct {
	TotalTournaments int64 `json:"totalTournaments"`
	TotalRewards     int64 `json:"totalRewards"`
	TotalPoints      int   `json:"totalPoints"`
}

type Dashboard struct {
	User        models.User         `json:"user"`
	Tournaments []models.Membership `json:"tournaments"`
	Rewards     []models.Claim      `json:"rewards"`
	Activity    []models.Activity   `json:"activity"`
	Stats       Stats               `json:"stats"`
}

type Reader struct {
	db *gorm.DB
}

func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// Dashboard aggregates a user's memberships, claims and recent activity.
// It reads inside one transaction so the counts match the lists.
func (r *Reader) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	var d Dashboard
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Profile").First(&d.User, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "User not found")
			}
			return fmt.Errorf("load user: %w", err)
		}

		if err := tx.Preload("Tournament").
			Where("user_id = ?", userID).
			Order("joined_at DESC, id DESC").
			Find(&d.Tournaments).Error; err != nil {
			return fmt.Errorf("load memberships: %w", err)
		}

		if err := tx.Preload("Reward").
			Where("user_id = ?", userID).
			Order("claimed_at DESC, id DESC").
			Find(&d.Rewards).Error; err != nil {
			return fmt.Errorf("load claims: %w", err)
		}

		activity, err := recent(tx, userID, RecentActivityLimit)
		if err != nil {
			return err
		}
		d.Activity = activity
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Stats = Stats{
		TotalTournaments: int64(len(d.Tournaments)),
		TotalRewards:     int64(len(d.Rewards)),
		TotalPoints:      d.User.Profile.Points,
	}
	return &d, nil
}

// Recent returns the newest activity rows for a user.
func (r *Reader) Recent(ctx context.Context, userID uint, limit int) ([]models.Activity, error) {
	return recent(r.db.WithContext(ctx), userID, limit)
}

func recent(db *gorm.DB, userID uint, limit int) ([]models.Activity, error) {
	var activity []models.Activity
	if err := db.Preload("Tournament").Preload("Reward").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&activity).Error; err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	return activity, nil
}
