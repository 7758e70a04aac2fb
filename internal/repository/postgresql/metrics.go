package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

const metricColumns = `employee_id, metric_date, attendance_hours, tasks_completed, productivity_score, updated_at`

type metricsRepositoryImpl struct {
	db *database.DB
}

func NewMetricsRepository(db *database.DB) metrics.MetricsRepository {
	return &metricsRepositoryImpl{db: db}
}

func scanMetric(row rowScanner) (metrics.PerformanceMetric, error) {
	var m metrics.PerformanceMetric
	err := row.Scan(&m.EmployeeID, &m.MetricDate, &m.AttendanceHours, &m.TasksCompleted, &m.ProductivityScore, &m.UpdatedAt)
	return m, err
}

// SumAttendanceHours implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) SumAttendanceHours(ctx context.Context, employeeID string, from, to time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total_hours), 0)::float8
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND clock_in >= $2
		  AND clock_in < $3
		  AND clock_out IS NOT NULL
	`

	var hours float64
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&hours); err != nil {
		return 0, translateError("failed to sum attendance hours", err)
	}
	return hours, nil
}

// CountCompletedTasks implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) CountCompletedTasks(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM tasks
		WHERE employee_id = $1
		  AND status = $2
		  AND completed_at >= $3
		  AND completed_at < $4
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeID, task.StatusCompleted, from, to).Scan(&count); err != nil {
		return 0, translateError("failed to count completed tasks", err)
	}
	return count, nil
}

// UpsertDaily implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) UpsertDaily(ctx context.Context, m metrics.PerformanceMetric) (metrics.PerformanceMetric, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO performance_metrics (employee_id, metric_date, attendance_hours, tasks_completed, productivity_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, metric_date)
		DO UPDATE SET attendance_hours = EXCLUDED.attendance_hours,
			tasks_completed = EXCLUDED.tasks_completed,
			productivity_score = EXCLUDED.productivity_score,
			updated_at = NOW()
		RETURNING employee_id, metric_date, attendance_hours::float8, tasks_completed, productivity_score, updated_at
	`

	saved, err := scanMetric(q.QueryRow(ctx, query, m.EmployeeID, m.MetricDate, m.AttendanceHours, m.TasksCompleted, m.ProductivityScore))
	if err != nil {
		if isForeignKeyViolation(err) {
			return metrics.PerformanceMetric{}, metrics.ErrEmployeeNotFound
		}
		return metrics.PerformanceMetric{}, translateError("failed to upsert daily metric", err)
	}
	return saved, nil
}

// ListByEmployee implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]metrics.PerformanceMetric, error) {
	query := `
		SELECT employee_id, metric_date, attendance_hours::float8, tasks_completed, productivity_score, updated_at
		FROM performance_metrics
		WHERE employee_id = $1`
	args := []interface{}{employeeID}

	query, args = appendDateRange(query, args, "metric_date", from, to)
	query += " ORDER BY metric_date DESC"

	return r.queryMetrics(ctx, query, args...)
}

// ListBetween implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) ListBetween(ctx context.Context, from, to *time.Time) ([]metrics.PerformanceMetric, error) {
	query := `
		SELECT employee_id, metric_date, attendance_hours::float8, tasks_completed, productivity_score, updated_at
		FROM performance_metrics
		WHERE 1=1`
	args := []interface{}{}

	query, args = appendDateRange(query, args, "metric_date", from, to)
	query += " ORDER BY metric_date DESC, employee_id"

	return r.queryMetrics(ctx, query, args...)
}

// appendDateRange adds inclusive bounds on column for whichever of from/to is set.
func appendDateRange(query string, args []interface{}, column string, from, to *time.Time) (string, []interface{}) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND %s >= $%d", column, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND %s <= $%d", column, len(args))
	}
	return query, args
}

func (r *metricsRepositoryImpl) queryMetrics(ctx context.Context, query string, args ...interface{}) ([]metrics.PerformanceMetric, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list metrics", err)
	}
	defer rows.Close()

	result := make([]metrics.PerformanceMetric, 0)
	for rows.Next() {
		m, err := scanMetric(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		result = append(result, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// AverageByEmployee implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) AverageByEmployee(ctx context.Context) ([]metrics.EmployeeAverage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.code, a.firstname, a.lastname,
			ROUND(AVG(pm.productivity_score), 2)::float8 AS avg_score,
			COUNT(pm.metric_date)::int AS days
		FROM performance_metrics pm
		JOIN accounts a ON a.id = pm.employee_id
		GROUP BY a.id, a.code, a.firstname, a.lastname
		ORDER BY avg_score DESC, a.firstname
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, translateError("failed to average metrics", err)
	}
	defer rows.Close()

	result := make([]metrics.EmployeeAverage, 0)
	for rows.Next() {
		var avg metrics.EmployeeAverage
		if err := rows.Scan(&avg.EmployeeID, &avg.Code, &avg.Firstname, &avg.Lastname, &avg.AvgScore, &avg.Days); err != nil {
			return nil, fmt.Errorf("failed to scan metric average: %w", err)
		}
		result = append(result, avg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// AggregateWeek implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) AggregateWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]metrics.WeeklyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id,
			COALESCE(SUM(attendance_hours), 0)::float8,
			COALESCE(SUM(tasks_completed), 0)::int,
			COALESCE(ROUND(AVG(productivity_score), 2), 0)::float8
		FROM performance_metrics
		WHERE metric_date >= $1 AND metric_date < $2
		GROUP BY employee_id
		ORDER BY employee_id
	`

	rows, err := q.Query(ctx, query, weekStart, weekEnd)
	if err != nil {
		return nil, translateError("failed to aggregate weekly metrics", err)
	}
	defer rows.Close()

	result := make([]metrics.WeeklyReport, 0)
	for rows.Next() {
		w := metrics.WeeklyReport{WeekStart: weekStart, WeekEnd: weekEnd}
		if err := rows.Scan(&w.EmployeeID, &w.AttendanceHours, &w.TasksCompleted, &w.AvgProductivity); err != nil {
			return nil, fmt.Errorf("failed to scan weekly aggregate: %w", err)
		}
		result = append(result, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpsertWeekly implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) UpsertWeekly(ctx context.Context, report metrics.WeeklyReport) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO weekly_reports (employee_id, week_start, week_end, attendance_hours, tasks_completed, avg_productivity, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, week_start)
		DO UPDATE SET week_end = EXCLUDED.week_end,
			attendance_hours = EXCLUDED.attendance_hours,
			tasks_completed = EXCLUDED.tasks_completed,
			avg_productivity = EXCLUDED.avg_productivity,
			summary = EXCLUDED.summary,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		report.EmployeeID,
		report.WeekStart,
		report.WeekEnd,
		report.AttendanceHours,
		report.TasksCompleted,
		report.AvgProductivity,
		report.Summary,
	)
	if err != nil {
		return translateError("failed to upsert weekly report", err)
	}
	return nil
}

// ListWeekly implements metrics.MetricsRepository.
func (r *metricsRepositoryImpl) ListWeekly(ctx context.Context, employeeID *string, limit int) ([]metrics.WeeklyReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, week_start, week_end, attendance_hours::float8, tasks_completed,
			avg_productivity::float8, summary, updated_at
		FROM weekly_reports`
	args := []interface{}{}

	if employeeID != nil {
		args = append(args, *employeeID)
		query += fmt.Sprintf(" WHERE employee_id = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY week_start DESC, employee_id LIMIT $%d", len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list weekly reports", err)
	}
	defer rows.Close()

	result := make([]metrics.WeeklyReport, 0)
	for rows.Next() {
		var w metrics.WeeklyReport
		err := rows.Scan(&w.EmployeeID, &w.WeekStart, &w.WeekEnd, &w.AttendanceHours, &w.TasksCompleted,
			&w.AvgProductivity, &w.Summary, &w.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly report: %w", err)
		}
		result = append(result, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
