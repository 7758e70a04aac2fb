package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	breaks.BreakRepository
	loc *time.Location
	now func() time.Time
}

func NewAttendanceService(tx database.Transactor, attendanceRepository attendance.AttendanceRepository, breakRepository breaks.BreakRepository, loc *time.Location) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		BreakRepository:      breakRepository,
		loc:                  loc,
		now:                  time.Now,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.SessionResponse, error) {
	var session attendance.Session

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
		if err == nil {
			return attendance.ErrAlreadyClockedIn
		}
		if !errors.Is(err, attendance.ErrNoActiveSession) {
			return err
		}

		session, err = a.AttendanceRepository.Create(ctx, employeeID, a.now().UTC())
		return err
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	slog.Debug("clocked in", "employee_id", employeeID, "session_id", session.ID)
	return attendance.NewSessionResponse(session), nil
}

// closeOpenBreak ends the employee's open break belonging to sessionID at end.
// It reports whether a break was closed.
func (a *AttendanceServiceImpl) closeOpenBreak(ctx context.Context, employeeID string, sessionID string, end time.Time) (bool, error) {
	open, err := a.BreakRepository.GetOpen(ctx, employeeID)
	if err != nil {
		if errors.Is(err, breaks.ErrNoActiveBreak) {
			return false, nil
		}
		return false, err
	}
	if open.AttendanceID != sessionID {
		return false, nil
	}

	if end.Before(open.BreakStart) {
		end = open.BreakStart
	}
	if _, err := a.BreakRepository.Close(ctx, open.ID, end, breaks.MinutesBetween(open.BreakStart, end)); err != nil {
		return false, fmt.Errorf("failed to close break on clock-out: %w", err)
	}
	return true, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.SessionResponse, error) {
	var (
		closed      attendance.Session
		breakClosed bool
	)

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
		if err != nil {
			return err
		}

		clockOut := a.now().UTC()
		if clockOut.Before(open.ClockIn) {
			clockOut = open.ClockIn
		}

		breakClosed, err = a.closeOpenBreak(ctx, employeeID, open.ID, clockOut)
		if err != nil {
			return err
		}

		closed, err = a.AttendanceRepository.Close(ctx, open.ID, clockOut, attendance.HoursBetween(open.ClockIn, clockOut))
		return err
	})
	if err != nil {
		return attendance.SessionResponse{}, err
	}

	slog.Debug("clocked out", "employee_id", employeeID, "session_id", closed.ID, "break_closed", breakClosed)

	resp := attendance.NewSessionResponse(closed)
	resp.BreakClosed = breakClosed
	return resp, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (*attendance.SessionResponse, error) {
	y, m, d := a.now().In(a.loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, a.loc)

	session, err := a.AttendanceRepository.GetLatestStartedBetween(ctx, employeeID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	resp := attendance.NewSessionResponse(*session)
	return &resp, nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, employeeID string, limit int) ([]attendance.SessionResponse, error) {
	limit = attendance.ClampLimit(limit, attendance.DefaultHistoryLimit, attendance.MaxHistoryLimit)

	sessions, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		responses = append(responses, attendance.NewSessionResponse(s))
	}
	return responses, nil
}

// CloseStaleSessions implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CloseStaleSessions(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("max session age must be positive, got %s", maxAge)
	}

	stale, err := a.AttendanceRepository.ListOpenStartedBefore(ctx, a.now().UTC().Add(-maxAge))
	if err != nil {
		return 0, err
	}

	var (
		closed int
		errs   []error
	)
	for _, s := range stale {
		clockOut := s.ClockIn.Add(maxAge)

		err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			if _, err := a.closeOpenBreak(ctx, s.EmployeeID, s.ID, clockOut); err != nil {
				return err
			}
			_, err := a.AttendanceRepository.Close(ctx, s.ID, clockOut, attendance.HoursBetween(s.ClockIn, clockOut))
			return err
		})
		if err != nil {
			if errors.Is(err, attendance.ErrNoActiveSession) {
				// Clocked out between the listing and the close.
				continue
			}
			slog.Error("failed to close stale session", "session_id", s.ID, "employee_id", s.EmployeeID, "error", err)
			errs = append(errs, err)
			continue
		}
		closed++
	}

	return closed, errors.Join(errs...)
}
