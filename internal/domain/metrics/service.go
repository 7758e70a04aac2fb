package metrics

import (
	"context"
	"time"
)

type MetricsService interface {
	// CalculateDaily recomputes and upserts one employee's metric for date
	CalculateDaily(ctx context.Context, employeeID string, date time.Time) (MetricResponse, error)

	// RunDaily recomputes date for every active employee
	RunDaily(ctx context.Context, date time.Time) (RunSummary, error)

	// RunWeekly rolls up the seven days before weekEnd into weekly reports
	RunWeekly(ctx context.Context, weekEnd time.Time) (RunSummary, error)

	GetEmployeeMetrics(ctx context.Context, employeeID string, filter RangeFilter) ([]MetricResponse, error)
	GetAdminSummary(ctx context.Context) ([]EmployeeAverageResponse, error)
	ListWeeklyReports(ctx context.Context, employeeID *string) ([]WeeklyReportResponse, error)
}
