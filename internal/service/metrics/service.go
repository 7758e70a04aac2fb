package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers     = 4
	weeklyReportsLimit = 200
)

type MetricsServiceImpl struct {
	metrics.MetricsRepository
	account.AccountRepository
	loc     *time.Location
	workers int
	now     func() time.Time
}

func NewMetricsService(metricsRepository metrics.MetricsRepository, accountRepository account.AccountRepository, loc *time.Location, workers int) metrics.MetricsService {
	if loc == nil {
		loc = time.UTC
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &MetricsServiceImpl{
		MetricsRepository: metricsRepository,
		AccountRepository: accountRepository,
		loc:               loc,
		workers:           workers,
		now:               time.Now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateDaily implements metrics.MetricsService.
func (s *MetricsServiceImpl) CalculateDaily(ctx context.Context, employeeID string, date time.Time) (metrics.MetricResponse, error) {
	day := metrics.CalendarDate(date, time.UTC)
	from, to := metrics.DayBounds(day, s.loc)

	hours, err := s.MetricsRepository.SumAttendanceHours(ctx, employeeID, from, to)
	if err != nil {
		return metrics.MetricResponse{}, err
	}
	hours = round2(hours)

	tasks, err := s.MetricsRepository.CountCompletedTasks(ctx, employeeID, from, to)
	if err != nil {
		return metrics.MetricResponse{}, err
	}

	saved, err := s.MetricsRepository.UpsertDaily(ctx, metrics.PerformanceMetric{
		EmployeeID:        employeeID,
		MetricDate:        day,
		AttendanceHours:   hours,
		TasksCompleted:    tasks,
		ProductivityScore: metrics.ProductivityScore(hours, tasks),
	})
	if err != nil {
		return metrics.MetricResponse{}, err
	}

	return metrics.NewMetricResponse(saved), nil
}

// RunDaily implements metrics.MetricsService.
func (s *MetricsServiceImpl) RunDaily(ctx context.Context, date time.Time) (metrics.RunSummary, error) {
	day := metrics.CalendarDate(date, time.UTC)
	start := time.Now()

	employeeIDs, err := s.AccountRepository.ListActiveStaffIDs(ctx)
	if err != nil {
		return metrics.RunSummary{}, fmt.Errorf("failed to list active staff: %w", err)
	}

	var processed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, employeeID := range employeeIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := s.CalculateDaily(gctx, employeeID, day); err != nil {
				failed.Add(1)
				slog.Error("daily metric failed", "employee_id", employeeID, "date", day.Format(time.DateOnly), "error", err)
				return nil
			}
			processed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return metrics.RunSummary{}, err
	}

	summary := metrics.RunSummary{
		Date:      day.Format(time.DateOnly),
		Processed: int(processed.Load()),
		Failed:    int(failed.Load()),
	}
	slog.Info("daily metrics computed",
		"date", summary.Date,
		"processed", summary.Processed,
		"failed", summary.Failed,
		"duration", time.Since(start),
	)
	return summary, nil
}

// RunWeekly implements metrics.MetricsService.
func (s *MetricsServiceImpl) RunWeekly(ctx context.Context, weekEnd time.Time) (metrics.RunSummary, error) {
	end := metrics.CalendarDate(weekEnd, time.UTC)
	begin := end.AddDate(0, 0, -7)

	rows, err := s.MetricsRepository.AggregateWeek(ctx, begin, end)
	if err != nil {
		return metrics.RunSummary{}, err
	}

	summary := metrics.RunSummary{Date: begin.Format(time.DateOnly)}
	for _, w := range rows {
		w.WeekStart = begin
		w.WeekEnd = end
		w.AttendanceHours = round2(w.AttendanceHours)
		w.AvgProductivity = round2(w.AvgProductivity)
		w.Summary = metrics.WeeklySummary(w.AttendanceHours, w.TasksCompleted, w.AvgProductivity)

		if err := s.MetricsRepository.UpsertWeekly(ctx, w); err != nil {
			summary.Failed++
			slog.Error("weekly report failed", "employee_id", w.EmployeeID, "week_start", summary.Date, "error", err)
			continue
		}
		summary.Processed++
	}

	slog.Info("weekly reports computed", "week_start", summary.Date, "processed", summary.Processed, "failed", summary.Failed)
	return summary, nil
}

// GetEmployeeMetrics implements metrics.MetricsService.
func (s *MetricsServiceImpl) GetEmployeeMetrics(ctx context.Context, employeeID string, filter metrics.RangeFilter) ([]metrics.MetricResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	list, err := s.MetricsRepository.ListByEmployee(ctx, employeeID, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, err
	}

	responses := make([]metrics.MetricResponse, 0, len(list))
	for _, m := range list {
		responses = append(responses, metrics.NewMetricResponse(m))
	}
	return responses, nil
}

// GetAdminSummary implements metrics.MetricsService.
func (s *MetricsServiceImpl) GetAdminSummary(ctx context.Context) ([]metrics.EmployeeAverageResponse, error) {
	averages, err := s.MetricsRepository.AverageByEmployee(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]metrics.EmployeeAverageResponse, 0, len(averages))
	for _, a := range averages {
		responses = append(responses, metrics.EmployeeAverageResponse{
			EmployeeID: a.EmployeeID,
			Code:       a.Code,
			Firstname:  a.Firstname,
			Lastname:   a.Lastname,
			AvgScore:   a.AvgScore,
			Days:       a.Days,
		})
	}
	return responses, nil
}

// ListWeeklyReports implements metrics.MetricsService.
func (s *MetricsServiceImpl) ListWeeklyReports(ctx context.Context, employeeID *string) ([]metrics.WeeklyReportResponse, error) {
	reports, err := s.MetricsRepository.ListWeekly(ctx, employeeID, weeklyReportsLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]metrics.WeeklyReportResponse, 0, len(reports))
	for _, w := range reports {
		responses = append(responses, metrics.NewWeeklyReportResponse(w))
	}
	return responses, nil
}
