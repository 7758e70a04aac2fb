package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	Create(ctx context.Context, newTask Task) (Task, error)

	// GetByID locks the row for the rest of the transaction. Returns ErrTaskNotFound.
	GetByID(ctx context.Context, id string) (Task, error)

	// Activate moves a pending task to active. Returns ErrTaskAlreadyActive when the
	// employee already has an active task or the task left the pending state.
	Activate(ctx context.Context, id string) (Task, error)

	MarkCompleted(ctx context.Context, id string, completedAt time.Time) (Task, error)
	ListByEmployee(ctx context.Context, employeeID string, status *Status) ([]Task, error)
	ListByManager(ctx context.Context, managerID string) ([]Task, error)

	// UpdateByManager writes only the supplied fields. Returns ErrTaskNotFound when
	// the task does not belong to managerID.
	UpdateByManager(ctx context.Context, id string, managerID string, req UpdateTaskRequest) (Task, error)
	DeleteByManager(ctx context.Context, id string, managerID string) (int64, error)
}

type TaskLogRepository interface {
	Open(ctx context.Context, taskID string, start time.Time) (Log, error)

	// GetOpen returns ErrNoActiveTask when the task has no open log.
	GetOpen(ctx context.Context, taskID string) (Log, error)

	Close(ctx context.Context, id string, end time.Time, durationMinutes float64, description *string) (Log, error)
	ListByTask(ctx context.Context, taskID string) ([]Log, error)
}
