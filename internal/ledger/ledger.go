// Package ledger owns point balances and the append-only activity log.
// Every function that takes a *gorm.DB expects the caller's transaction, so
// the balance change and the activity row commit together.
package ledger

import (
	"errors"
	"fmt"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Entry struct {
	UserID       uint
	Kind         models.ActivityKind
	Description  string
	PointsChange int
	TournamentID *uint
	RewardID     *uint
}

// Record appends one activity row.
func Record(tx *gorm.DB, e Entry) (*models.Activity, error) {
	if _, err := models.ParseActivityKind(string(e.Kind)); err != nil {
		return nil, apperr.Wrap(apperr.CodeValidation, "Invalid activity type", err)
	}

	activity := models.Activity{
		UserID:       e.UserID,
		TournamentID: e.TournamentID,
		RewardID:     e.RewardID,
		Kind:         e.Kind,
		Description:  e.Description,
		PointsChange: e.PointsChange,
		Status:       models.ActivityStatusCompleted,
	}
	if err := tx.Omit(clause.Associations).Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	return &activity, nil
}

// LockProfile re-reads the profile with a row lock (FOR UPDATE where the
// driver supports it).
func LockProfile(tx *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.CodeNotFound, "Profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("lock profile: %w", err)
	}
	return &profile, nil
}

// Credit adds amount points.
func Credit(tx *gorm.DB, userID uint, amount int) error {
	if amount < 0 {
		return fmt.Errorf("credit amount must not be negative: %d", amount)
	}
	res := tx.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("credit points: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return apperr.New(apperr.CodeNotFound, "Profile not found")
	}
	return nil
}

// Debit removes amount points and fails with InsufficientPoints instead of
// letting the balance go negative.
func Debit(tx *gorm.DB, userID uint, amount int) error {
	if amount < 0 {
		return fmt.Errorf("debit amount must not be negative: %d", amount)
	}
	res := tx.Model(&models.Profile{}).
		Where("user_id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if res.Error != nil {
		return fmt.Errorf("debit points: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return apperr.ErrInsufficientPoints
	}
	return nil
}

// DebitFloor removes up to amount points, stopping at zero.
func DebitFloor(tx *gorm.DB, userID uint, amount int) error {
	if amount < 0 {
		return fmt.Errorf("debit amount must not be negative: %d", amount)
	}
	res := tx.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("CASE WHEN points > ? THEN points - ? ELSE 0 END", amount, amount))
	if res.Error != nil {
		return fmt.Errorf("debit points: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		return apperr.New(apperr.CodeNotFound, "Profile not found")
	}
	return nil
}
