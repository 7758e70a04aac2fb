package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn opens a session stamped now
	ClockIn(ctx context.Context, employeeID string) (SessionResponse, error)

	// ClockOut closes the open session and any break still running in it
	ClockOut(ctx context.Context, employeeID string) (SessionResponse, error)

	// GetToday returns the most recent session started today, or nil
	GetToday(ctx context.Context, employeeID string) (*SessionResponse, error)

	History(ctx context.Context, employeeID string, limit int) ([]SessionResponse, error)

	// CloseStaleSessions closes sessions open longer than maxAge at clock_in+maxAge
	CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int, error)
}
