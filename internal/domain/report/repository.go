package report

import "context"

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	Create(ctx context.Context, newReport Report) (Report, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Report, error)
	List(ctx context.Context, filter ListFilter) ([]Report, error)

	// ListByManager returns reports of accounts whose manager_id is managerID.
	ListByManager(ctx context.Context, managerID string) ([]Report, error)
}
