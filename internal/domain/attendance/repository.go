package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create opens a session. Returns ErrAlreadyClockedIn when one is already open.
	Create(ctx context.Context, employeeID string, clockIn time.Time) (Session, error)

	// GetOpenSession locks and returns the employee's open session, or ErrNoActiveSession.
	GetOpenSession(ctx context.Context, employeeID string) (Session, error)

	Close(ctx context.Context, id string, clockOut time.Time, totalHours float64) (Session, error)

	// GetLatestStartedBetween returns nil when no session started in [from, to).
	GetLatestStartedBetween(ctx context.Context, employeeID string, from, to time.Time) (*Session, error)

	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Session, error)
	ListOpenStartedBefore(ctx context.Context, before time.Time) ([]Session, error)
}
