package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	metrics.MetricsService
	mu     sync.Mutex
	daily  []time.Time
	weekly []time.Time
}

func (r *recordingMetrics) RunDaily(_ context.Context, date time.Time) (metrics.RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.daily = append(r.daily, date)
	return metrics.RunSummary{}, nil
}

func (r *recordingMetrics) RunWeekly(_ context.Context, weekEnd time.Time) (metrics.RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.weekly = append(r.weekly, weekEnd)
	return metrics.RunSummary{}, nil
}

type stubAttendance struct {
	attendance.AttendanceService
	maxAge time.Duration
	closed int
	err    error
}

func (s *stubAttendance) CloseStaleSessions(_ context.Context, maxAge time.Duration) (int, error) {
	s.maxAge = maxAge
	return s.closed, s.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(time.UTC)

	require.NoError(t, s.AddJob("hourly", "0 * * * *", func(context.Context) error { return nil }))
	assert.Error(t, s.AddJob("broken", "every tuesday", func(context.Context) error { return nil }))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "hourly", jobs[0].Name)
}

func TestScheduler_RunJob(t *testing.T) {
	s := NewScheduler(nil)
	calls := 0
	require.NoError(t, s.AddJob("count", "@daily", func(context.Context) error {
		calls++
		return nil
	}))

	require.NoError(t, s.RunJob(context.Background(), "count"))
	assert.Equal(t, 1, calls)
	assert.Error(t, s.RunJob(context.Background(), "missing"))

	s.RunOnce(context.Background())
	assert.Equal(t, 2, calls)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC)
	require.NoError(t, s.AddJob("noop", "0 0 * * *", func(context.Context) error { return nil }))

	s.Start()
	s.Stop()
}

func TestMetricsJobs(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	svc := &recordingMetrics{}
	jobs := NewMetricsJobs(svc, jakarta)
	// 2025-03-10 18:30 UTC is already 2025-03-11 in Jakarta.
	jobs.now = func() time.Time { return time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC) }

	s := NewScheduler(jakarta)
	require.NoError(t, jobs.RegisterJobs(s, "0 0 * * *", "0 1 * * 1"))
	assert.Len(t, s.Jobs(), 2)

	ctx := context.Background()
	require.NoError(t, s.RunJob(ctx, JobDailyMetrics))
	require.NoError(t, s.RunJob(ctx, JobWeeklyReports))
	require.NoError(t, jobs.Today(ctx))

	require.Len(t, svc.daily, 2)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), svc.daily[0])
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), svc.daily[1])
	require.Len(t, svc.weekly, 1)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), svc.weekly[0])

	assert.Error(t, jobs.RegisterJobs(NewScheduler(nil), "nonsense", "0 1 * * 1"))
}

func TestAttendanceJobs(t *testing.T) {
	svc := &stubAttendance{closed: 2}
	jobs := NewAttendanceJobs(svc, 16*time.Hour)

	s := NewScheduler(time.UTC)
	require.NoError(t, jobs.RegisterJobs(s, "@hourly"))
	require.NoError(t, s.RunJob(context.Background(), JobCloseStaleSessions))
	assert.Equal(t, 16*time.Hour, svc.maxAge)

	svc.err = errors.New("store down")
	assert.Error(t, jobs.CloseStaleSessions(context.Background()))

	disabled := NewScheduler(time.UTC)
	require.NoError(t, NewAttendanceJobs(svc, 0).RegisterJobs(disabled, "@hourly"))
	assert.Empty(t, disabled.Jobs())
}
