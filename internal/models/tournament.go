package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

func ParseTournamentStatus(s string) (TournamentStatus, error) {
	switch st := TournamentStatus(s); st {
	case TournamentUpcoming, TournamentActive, TournamentCompleted, TournamentCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown tournament status %q", s)
}

type Tournament struct {
	gorm.Model
	Title           string           `gorm:"not null" json:"title"`
	Slug            string           `gorm:"index" json:"slug"`
	Game            string           `gorm:"not null" json:"game"`
	Description     string           `json:"description"`
	StartDate       time.Time        `json:"start_date"`
	EndDate         time.Time        `json:"end_date"`
	PrizePool       string           `json:"prize_pool"`
	MaxParticipants int              `gorm:"not null" json:"max_participants"`
	Status          TournamentStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedByID     uint             `json:"created_by_id"`
	CreatedBy       User             `gorm:"foreignKey:CreatedByID" json:"-"`
}
