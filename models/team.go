package models

import "gorm.io/gorm"

// Role is a team membership role. The set is closed: every call site
// switches on the two constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Team is the tenant boundary: all authorization below it is derived
// by walking the containment tree up to the owning team and checking
// membership there.
type Team struct {
	gorm.Model
	Name      string `gorm:"not null" json:"name"`
	CreatedBy uint   `gorm:"not null" json:"created_by"`

	// Relations
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Boards  []Board      `gorm:"foreignKey:TeamID" json:"boards,omitempty"`
}

// TeamMember joins a user to a team with a role. One row per
// (team, user) pair. A team must keep at least one admin; the removal
// path enforces that, creation does not need to (the creator is
// auto-enrolled as admin).
type TeamMember struct {
	gorm.Model
	TeamID uint `gorm:"not null;index;uniqueIndex:idx_team_user" json:"team_id"`
	UserID uint `gorm:"not null;index;uniqueIndex:idx_team_user" json:"user_id"`
	Role   Role `gorm:"not null;default:'member'" json:"role"`

	// Relations
	Team Team `json:"-"`
	User User `json:"-"`
}
