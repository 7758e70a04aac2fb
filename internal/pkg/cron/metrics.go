package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
)

const (
	JobDailyMetrics  = "daily_metrics"
	JobWeeklyReports = "weekly_reports"
)

type MetricsJobs struct {
	metricsService metrics.MetricsService
	loc            *time.Location
	now            func() time.Time
}

func NewMetricsJobs(metricsService metrics.MetricsService, loc *time.Location) *MetricsJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &MetricsJobs{
		metricsService: metricsService,
		loc:            loc,
		now:            time.Now,
	}
}

func (j *MetricsJobs) RegisterJobs(scheduler *Scheduler, dailySpec string, weeklySpec string) error {
	if err := scheduler.AddJob(JobDailyMetrics, dailySpec, j.DailyMetrics); err != nil {
		return err
	}
	return scheduler.AddJob(JobWeeklyReports, weeklySpec, j.WeeklyReports)
}

// today is the current calendar day in the scheduler's timezone.
func (j *MetricsJobs) today() time.Time {
	return metrics.CalendarDate(j.now(), j.loc)
}

// DailyMetrics runs shortly after midnight and aggregates the day that just ended.
func (j *MetricsJobs) DailyMetrics(ctx context.Context) error {
	_, err := j.metricsService.RunDaily(ctx, j.today().AddDate(0, 0, -1))
	return err
}

// Today aggregates the current, still running day. Used for run-on-start.
func (j *MetricsJobs) Today(ctx context.Context) error {
	_, err := j.metricsService.RunDaily(ctx, j.today())
	return err
}

// WeeklyReports rolls up the seven days before today.
func (j *MetricsJobs) WeeklyReports(ctx context.Context) error {
	_, err := j.metricsService.RunWeekly(ctx, j.today())
	return err
}
