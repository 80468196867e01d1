package models

import (
	"fmt"

	"gorm.io/gorm"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleHost      Role = "host"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin, RoleModerator, RoleHost:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Profile is created together with its User and only changes through
// ledger-writing operations (points) or profile updates (avatar, role).
type Profile struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Role   Role   `gorm:"type:varchar(20);not null" json:"role"`
	Avatar string `json:"avatar"`
	Points int    `gorm:"not null;default:0;check:points >= 0" json:"points"`
}
