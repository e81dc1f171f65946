package model

import "time"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// DueDateLayout is the only accepted due date format.
const DueDateLayout = "2006-01-02"

// Task represents a single item in the planner.
type Task struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	CategoryID  *uint     `gorm:"index"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	Priority    Priority  `gorm:"size:20;not null"`
	Status      Status    `gorm:"size:20;not null"`
	DueDate     *string   `gorm:"size:20"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}
