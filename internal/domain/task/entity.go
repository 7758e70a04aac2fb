package task

import (
	"math"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Task moves pending -> active -> completed. An employee has at most one active task.
type Task struct {
	ID          string
	ManagerID   *string
	EmployeeID  string
	Title       string
	Description *string
	Priority    Priority
	Deadline    *time.Time
	Status      Status
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Log is a work interval on a task, opened on start and closed on completion.
type Log struct {
	ID              string
	TaskID          string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *float64
	Description     *string
}

// MinutesBetween returns elapsed minutes rounded to two decimals.
func MinutesBetween(from, to time.Time) float64 {
	return math.Round(to.Sub(from).Minutes()*100) / 100
}
