package models

import (
	"fmt"
	"time"
)

type ActivityKind string

const (
	ActivityRegistration    ActivityKind = "registration"
	ActivityLogin           ActivityKind = "login"
	ActivityTournamentJoin  ActivityKind = "tournament_join"
	ActivityTournamentLeave ActivityKind = "tournament_leave"
	ActivityRewardClaim     ActivityKind = "reward_claim"
	ActivityPointsEarned    ActivityKind = "points_earned"
	ActivityProfileUpdate   ActivityKind = "profile_update"
)

func ParseActivityKind(s string) (ActivityKind, error) {
	switch k := ActivityKind(s); k {
	case ActivityRegistration, ActivityLogin, ActivityTournamentJoin, ActivityTournamentLeave,
		ActivityRewardClaim, ActivityPointsEarned, ActivityProfileUpdate:
		return k, nil
	}
	return "", fmt.Errorf("unknown activity kind %q", s)
}

const ActivityStatusCompleted = "completed"

// Activity is an append-only ledger row. It is never updated or deleted.
type Activity struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"user_id"`
	TournamentID *uint        `json:"tournament_id"`
	Tournament   *Tournament  `gorm:"foreignKey:TournamentID" json:"tournament,omitempty"`
	RewardID     *uint        `json:"reward_id"`
	Reward       *Reward      `gorm:"foreignKey:RewardID" json:"reward,omitempty"`
	Kind         ActivityKind `gorm:"column:activity_type;type:varchar(30);not null" json:"activity_type"`
	Description  string       `gorm:"not null" json:"description"`
	PointsChange int          `gorm:"not null" json:"points_change"`
	Status       string       `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt    time.Time    `gorm:"index" json:"created_at"`
}

// All lists every table in migration order.
func All() []any {
	return []any{
		&User{}, &Profile{}, &Tournament{}, &Membership{},
		&Reward{}, &Claim{}, &Game{}, &Activity{},
	}
}
