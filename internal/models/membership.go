package models

import (
	"fmt"
	"time"
)

type MembershipStatus string

const (
	MembershipRegistered   MembershipStatus = "registered"
	MembershipActive       MembershipStatus = "active"
	MembershipCompleted    MembershipStatus = "completed"
	MembershipDisqualified MembershipStatus = "disqualified"
)

func ParseMembershipStatus(s string) (MembershipStatus, error) {
	switch st := MembershipStatus(s); st {
	case MembershipRegistered, MembershipActive, MembershipCompleted, MembershipDisqualified:
		return st, nil
	}
	return "", fmt.Errorf("unknown membership status %q", s)
}

// Membership has no soft delete: leaving removes the row so the user can join again.
type Membership struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	UserID       uint             `gorm:"uniqueIndex:idx_user_tournament;not null" json:"user_id"`
	TournamentID uint             `gorm:"uniqueIndex:idx_user_tournament;not null" json:"tournament_id"`
	Tournament   Tournament       `gorm:"foreignKey:TournamentID" json:"tournament"`
	Status       MembershipStatus `gorm:"type:varchar(20);not null" json:"status"`
	JoinedAt     time.Time        `gorm:"autoCreateTime" json:"joined_at"`
}
