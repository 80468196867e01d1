package games

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdg-garage/garage-arena-api/internal/apperr"
	"github.com/gdg-garage/garage-arena-api/internal/ledger"
	"github.com/gdg-garage/garage-arena-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const SubmissionPoints = 25

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type SubmitInput struct {
	Title       string
	Developer   string
	Genre       string
	Description string
	ImageURL    string
}

// Submit queues a game for moderation and credits SubmissionPoints.
// Titles are not deduplicated.
func (s *Service) Submit(ctx context.Context, userID uint, in SubmitInput) (*models.Game, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Developer = strings.TrimSpace(in.Developer)
	in.Genre = strings.TrimSpace(in.Genre)
	if in.Title == "" || in.Developer == "" || in.Genre == "" {
		return nil, apperr.New(apperr.CodeValidation, "Title, developer and genre are required")
	}

	game := models.Game{
		Title:         in.Title,
		Developer:     in.Developer,
		Genre:         in.Genre,
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		Status:        models.GamePending,
		SubmittedByID: userID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&game).Error; err != nil {
			return fmt.Errorf("create game: %w", err)
		}

		if _, err := ledger.Record(tx, ledger.Entry{
			UserID:       userID,
			Kind:         models.ActivityPointsEarned,
			Description:  "Submitted game: " + game.Title,
			PointsChange: SubmissionPoints,
		}); err != nil {
			return err
		}

		return ledger.Credit(tx, userID, SubmissionPoints)
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Service) List(ctx context.Context) ([]models.Game, error) {
	var list []models.Game
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return list, nil
}

// SetStatus overwrites the moderation status. Any transition is allowed and
// no points change. The game is looked up before the status is checked.
func (s *Service) SetStatus(ctx context.Context, gameID uint, status string) (*models.Game, error) {
	var game models.Game
	db := s.db.WithContext(ctx)
	if err := db.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "Game not found")
		}
		return nil, fmt.Errorf("load game: %w", err)
	}

	st, err := models.ParseGameStatus(status)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidStatus, "Invalid status", err)
	}

	if err := db.Model(&game).Update("status", st).Error; err != nil {
		return nil, fmt.Errorf("update game status: %w", err)
	}
	return &game, nil
}
