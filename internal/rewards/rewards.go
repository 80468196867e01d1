package rewards

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

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Title       string
	Description string
	Points      int
	Category    string
	ImageURL    string
	Stock       int
	IsActive    bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Reward, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.New(apperr.CodeValidation, "Title is required")
	}
	if in.Points <= 0 {
		return nil, apperr.New(apperr.CodeValidation, "Points must be greater than zero")
	}
	if in.Stock < 0 {
		return nil, apperr.New(apperr.CodeValidation, "Stock cannot be negative")
	}

	r := models.Reward{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Points:      in.Points,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, fmt.Errorf("create reward: %w", err)
	}
	return &r, nil
}

// List returns the active catalogue, newest first.
func (s *Service) List(ctx context.Context) ([]models.Reward, error) {
	var list []models.Reward
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	return list, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uint) ([]models.Claim, error) {
	var list []models.Claim
	if err := s.db.WithContext(ctx).Preload("Reward").
		Where("user_id = ?", userID).
		Order("claimed_at DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return list, nil
}

// Claim redeems one unit of a reward. The reward and the profile are locked
// and both decrements are guarded, so concurrent claims on the last unit or
// the same balance cannot both succeed.
func (s *Service) Claim(ctx context.Context, userID, rewardID uint) (*models.Claim, error) {
	if rewardID == 0 {
		return nil, apperr.New(apperr.CodeValidation, "Reward ID is required")
	}

	var claim models.Claim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.CodeNotFound, "Reward not found")
			}
			return fmt.Errorf("load reward: %w", err)
		}

		if !reward.IsActive {
			return apperr.New(apperr.CodeRewardInactive, "Reward is not active")
		}
		if reward.Stock <= 0 {
			return apperr.New(apperr.CodeOutOfStock, "Reward is out of stock")
		}

		profile, err := ledger.LockProfile(tx, userID)
		if err != nil {
			return err
		}
		if profile.Points < reward.Points {
			return apperr.New(apperr.CodeInsufficientPoints, "Insufficient points")
		}

		res := tx.Model(&models.Reward{}).
			Where("id = ? AND stock > 0", reward.ID).
			Update("stock", gorm.Expr("stock - ?", 1))
		if res.Error != nil {
			return fmt.Errorf("decrement stock: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return apperr.New(apperr.CodeOutOfStock, "Reward is out of stock")
		}

		if err := ledger.Debit(tx, userID, reward.Points); err != nil {
			return err
		}

		claim = models.Claim{
			UserID:   userID,
			RewardID: reward.ID,
			Status:   models.ClaimClaimed,
		}
		if err := tx.Omit(clause.Associations).Create(&claim).Error; err != nil {
			return fmt.Errorf("create claim: %w", err)
		}

		_, err = ledger.Record(tx, ledger.Entry{
			UserID:       userID,
			RewardID:     &reward.ID,
			Kind:         models.ActivityRewardClaim,
			Description:  "Claimed reward: " + reward.Title,
			PointsChange: -reward.Points,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// Restock adds units to a reward's stock.
func (s *Service) Restock(ctx context.Context, rewardID uint, quantity int) (*models.Reward, error) {
	if quantity <= 0 {
		return nil, apperr.New(apperr.CodeValidation, "Quantity must be greater than zero")
	}
	return s.update(ctx, rewardID, "stock", gorm.Expr("stock + ?", quantity))
}

func (s *Service) SetActive(ctx context.Context, rewardID uint, active bool) (*models.Reward, error) {
	return s.update(ctx, rewardID, "is_active", active)
}

func (s *Service) update(ctx context.Context, rewardID uint, column string, value any) (*models.Reward, error) {
	var reward models.Reward
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Reward{}).Where("id = ?", rewardID).Update(column, value)
		if res.Error != nil {
			return fmt.Errorf("update reward: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.CodeNotFound, "Reward not found")
		}
		return tx.First(&reward, rewardID).Error
	})
	if err != nil {
		return nil, err
	}
	return &reward, nil
}
