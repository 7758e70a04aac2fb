package breaks

import "context"

type BreakService interface {
	StartBreak(ctx context.Context, employeeID string) (BreakResponse, error)
	EndBreak(ctx context.Context, employeeID string) (BreakResponse, error)
	History(ctx context.Context, employeeID string, limit int) ([]BreakResponse, error)
}
