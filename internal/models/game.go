package models

import (
	"fmt"

	"gorm.io/gorm"
)

type GameStatus string

const (
	GamePending   GameStatus = "pending"
	GameApproved  GameStatus = "approved"
	GameTesting   GameStatus = "testing"
	GameCompleted GameStatus = "completed"
	GameRejected  GameStatus = "rejected"
)

func ParseGameStatus(s string) (GameStatus, error) {
	switch st := GameStatus(s); st {
	case GamePending, GameApproved, GameTesting, GameCompleted, GameRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown game status %q", s)
}

type Game struct {
	gorm.Model
	Title         string     `gorm:"not null" json:"title"`
	Developer     string     `gorm:"not null" json:"developer"`
	Genre         string     `gorm:"not null" json:"genre"`
	Description   string     `json:"description"`
	Status        GameStatus `gorm:"type:varchar(20);not null" json:"status"`
	ImageURL      string     `json:"image_url"`
	SubmittedByID uint       `gorm:"index" json:"submitted_by_id"`
	SubmittedBy   User       `gorm:"foreignKey:SubmittedByID" json:"-"`
}
