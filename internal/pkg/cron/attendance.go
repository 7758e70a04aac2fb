package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
)

const JobCloseStaleSessions = "close_stale_sessions"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	maxSessionAge     time.Duration
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, maxSessionAge time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		maxSessionAge:     maxSessionAge,
	}
}

// RegisterJobs adds the stale-session sweep. A zero maxSessionAge disables it.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	if j.maxSessionAge <= 0 {
		slog.Info("Stale session close disabled")
		return nil
	}
	return scheduler.AddJob(JobCloseStaleSessions, spec, j.CloseStaleSessions)
}

// CloseStaleSessions clock-outs sessions left open longer than the configured maximum.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	closed, err := j.attendanceService.CloseStaleSessions(ctx, j.maxSessionAge)
	if closed > 0 {
		slog.Info("Cron: Closed stale sessions", "count", closed, "max_age", j.maxSessionAge)
	}
	return err
}
