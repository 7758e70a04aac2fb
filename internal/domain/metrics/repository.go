package metrics

import (
	"context"
	"time"
)

type MetricsRepository interface {
	// SumAttendanceHours totals closed sessions whose clock_in falls in [from, to).
	SumAttendanceHours(ctx context.Context, employeeID string, from, to time.Time) (float64, error)

	// CountCompletedTasks counts tasks whose completed_at falls in [from, to).
	CountCompletedTasks(ctx context.Context, employeeID string, from, to time.Time) (int, error)

	// UpsertDaily is keyed on (employee_id, metric_date).
	UpsertDaily(ctx context.Context, m PerformanceMetric) (PerformanceMetric, error)

	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]PerformanceMetric, error)
	ListBetween(ctx context.Context, from, to *time.Time) ([]PerformanceMetric, error)
	AverageByEmployee(ctx context.Context) ([]EmployeeAverage, error)

	// AggregateWeek sums daily metrics with metric_date in [weekStart, weekEnd).
	AggregateWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]WeeklyReport, error)

	// UpsertWeekly is keyed on (employee_id, week_start).
	UpsertWeekly(ctx context.Context, report WeeklyReport) error
	ListWeekly(ctx context.Context, employeeID *string, limit int) ([]WeeklyReport, error)
}
