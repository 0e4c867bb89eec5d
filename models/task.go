package models

import "gorm.io/gorm"

// TaskPriority is a closed enumeration; new tasks default to medium.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus is a closed enumeration; new tasks default to new.
type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "in_progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Task is a unit of work inside a list. Moving a task between columns
// means updating ListID; moves are restricted to lists of the same
// board.
type Task struct {
	gorm.Model
	Title       string       `gorm:"not null" json:"title"`
	Description *string      `json:"description,omitempty"`
	ListID      uint         `gorm:"not null;index" json:"list_id"`
	CreatedBy   uint         `gorm:"not null" json:"created_by"`
	AssignedTo  *uint        `gorm:"index" json:"assigned_to,omitempty"`
	Priority    TaskPriority `gorm:"not null;default:'medium'" json:"priority"`
	Status      TaskStatus   `gorm:"not null;default:'new'" json:"status"`

	// Relations
	List     List      `json:"-"`
	Assignee *User     `gorm:"foreignKey:AssignedTo" json:"-"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`
}

// Comment is an append-only note on a task, ordered by insertion.
type Comment struct {
	gorm.Model
	TaskID  uint   `gorm:"not null;index" json:"task_id"`
	UserID  uint   `gorm:"not null" json:"user_id"`
	Content string `gorm:"not null" json:"content"`

	// Relations
	Task Task `json:"-"`
	User User `json:"-"`
}
