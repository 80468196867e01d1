package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Reward struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Points      int    `gorm:"not null;check:points > 0" json:"points"`
	Category    string `gorm:"index" json:"category"`
	ImageURL    string `json:"image_url"`
	Stock       int    `gorm:"not null;check:stock >= 0" json:"stock"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

type ClaimStatus string

const (
	ClaimClaimed   ClaimStatus = "claimed"
	ClaimShipped   ClaimStatus = "shipped"
	ClaimDelivered ClaimStatus = "delivered"
)

func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch st := ClaimStatus(s); st {
	case ClaimClaimed, ClaimShipped, ClaimDelivered:
		return st, nil
	}
	return "", fmt.Errorf("unknown claim status %q", s)
}

// Claim records one redemption of a Reward by a User.
type Claim struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"index;not null" json:"user_id"`
	RewardID  uint        `gorm:"index;not null" json:"reward_id"`
	Reward    Reward      `gorm:"foreignKey:RewardID" json:"reward"`
	Status    ClaimStatus `gorm:"type:varchar(20);not null" json:"status"`
	ClaimedAt time.Time   `gorm:"autoCreateTime" json:"claimed_at"`
}
