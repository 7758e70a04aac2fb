package breaks

import (
	"context"
	"time"
)

type BreakRepository interface {
	// Create returns ErrBreakInProgress when the employee already has an open break.
	Create(ctx context.Context, employeeID string, attendanceID string, start time.Time) (Break, error)

	// GetOpen locks and returns the open break, or ErrNoActiveBreak.
	GetOpen(ctx context.Context, employeeID string) (Break, error)

	Close(ctx context.Context, id string, end time.Time, durationMinutes float64) (Break, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Break, error)
}
