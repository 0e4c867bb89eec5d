package models

import "gorm.io/gorm"

// Board is a named workspace within a team, containing ordered lists.
// Every team gets a default "Main Board" at creation.
type Board struct {
	gorm.Model
	Title     string `gorm:"not null" json:"title"`
	TeamID    uint   `gorm:"not null;index" json:"team_id"`
	CreatedBy *uint  `json:"created_by,omitempty"`

	// Relations
	Team  Team   `json:"-"`
	Lists []List `gorm:"foreignKey:BoardID" json:"lists,omitempty"`
}

// List is a column within a board. Position orders the columns; new
// lists default to max(position)+1 within their board.
type List struct {
	gorm.Model
	Title    string `gorm:"not null" json:"title"`
	BoardID  uint   `gorm:"not null;index" json:"board_id"`
	Position int    `gorm:"not null;default:0" json:"position"`

	// Relations
	Board Board  `json:"-"`
	Tasks []Task `gorm:"foreignKey:ListID" json:"tasks,omitempty"`
}
