package tournaments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/ledger"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	JoinPoints             = 10
	DefaultMaxParticipants = 100
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Title           string
	Game            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	PrizePool       string
	MaxParticipants int
	Status          string
}

func (s *Service) Create(ctx context.Context, creatorID uint, in CreateInput) (*models.Tournament, error) {
	title := strings.TrimSpace(in.Title)
	game := strings.TrimSpace(in.Game)
	if title == "" || game == "" {
		return nil, apperr.New(apperr.CodeValidation, "Title and game are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, apperr.New(apperr.CodeValidation, "End date cannot be before start date")
	}
	if in.MaxParticipants < 0 {
		return nil, apperr.New(apperr.CodeValidation, "Max participants must be positive")
	}
	if in.MaxParticipants == 0 {
		in.MaxParticipants = DefaultMaxParticipants
	}
	status := models.TournamentUpcoming
	if in.Status != "" {
		st, err := models.ParseTournamentStatus(in.Status)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeValidation, "Invalid tournament status", err)
		}
		status = st
	}

	t := models.Tournament{
		Title:           title,
		Slug:            slug.Make(title),
		Game:            game,
		Description:     in.Description,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		PrizePool:       in.PrizePool,
		MaxParticipants: in.MaxParticipants,
		Status:          status,
		CreatedByID:     creatorID,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&t).Error; err != nil {
		return nil, fmt.Errorf("create tournament: %w", err)
	}
	return &t, nil
}

func (s *Service) List(ctx context.Context) ([]models.Tournament, error) {
	var list []models.Tournament
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Tournament, error) {
	return find(s.db.WithContext(ctx), id)
}

// ListForUser returns the user's memberships, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Membership, error) {
	var list []models.Membership
	if err := s.db.WithContext(ctx).Preload("Tournament").
		Where("user_id = ?", userID).
		Order("joined_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return list, nil
}

// Join registers the user and credits JoinPoints in one transaction.
func (s *Service) Join(ctx context.Context, userID, tournamentID uint) (*models.Membership, error) {
	var membership models.Membership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := find(tx, tournamentID)
		if err != nil {
			return err
		}

		exists, err := isMember(tx, userID, t.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.New(apperr.CodeDuplicateMembership, "Already joined this tournament")
		}

		membership = models.Membership{
			UserID:       userID,
			TournamentID: t.ID,
			Status:       models.MembershipRegistered,
		}
		if err := tx.Omit(clause.Associations).Create(&membership).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.New(apperr.CodeDuplicateMembership, "Already joined this tournament")
			}
			return fmt.Errorf("create membership: %w", err)
		}

		if _, err := ledger.Record(tx, ledger.Entry{
			UserID:       userID,
			TournamentID: &t.ID,
			Kind:         models.ActivityTournamentJoin,
			Description:  "Joined tournament: " + t.Title,
			PointsChange: JoinPoints,
		}); err != nil {
			return err
		}

		return ledger.Credit(tx, userID, JoinPoints)
	})
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// Leave removes the membership and takes JoinPoints back, never below zero.
func (s *Service) Leave(ctx context.Context, userID, tournamentID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := find(tx, tournamentID)
		if err != nil {
			return err
		}

		res := tx.Where("user_id = ? AND tournament_id = ?", userID, t.ID).Delete(&models.Membership{})
		if res.Error != nil {
			return fmt.Errorf("delete membership: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.CodeNotEnrolled, "Not enrolled in this tournament")
		}

		if _, err := ledger.Record(tx, ledger.Entry{
			UserID:       userID,
			TournamentID: &t.ID,
			Kind:         models.ActivityTournamentLeave,
			Description:  "Left tournament: " + t.Title,
			PointsChange: -JoinPoints,
		}); err != nil {
			return err
		}

		return ledger.DebitFloor(tx, userID, JoinPoints)
	})
}

func find(db *gorm.DB, id uint) (*models.Tournament, error) {
	var t models.Tournament
	if err := db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Tournament not found")
		}
		return nil, fmt.Errorf("load tournament: %w", err)
	}
	return &t, nil
}

func isMember(tx *gorm.DB, userID, tournamentID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Membership{}).
		Where("user_id = ? AND tournament_id = ?", userID, tournamentID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}
