package breaks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

type BreakServiceImpl struct {
	tx database.Transactor
	breaks.BreakRepository
	attendance.AttendanceRepository
	now func() time.Time
}

func NewBreakService(tx database.Transactor, breakRepository breaks.BreakRepository, attendanceRepository attendance.AttendanceRepository) breaks.BreakService {
	return &BreakServiceImpl{
		tx:                   tx,
		BreakRepository:      breakRepository,
		AttendanceRepository: attendanceRepository,
		now:                  time.Now,
	}
}

// StartBreak implements breaks.BreakService.
func (b *BreakServiceImpl) StartBreak(ctx context.Context, employeeID string) (breaks.BreakResponse, error) {
	var started breaks.Break

	err := b.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := b.AttendanceRepository.GetOpenSession(ctx, employeeID)
		if err != nil {
			if errors.Is(err, attendance.ErrNoActiveSession) {
				return breaks.ErrNotClockedIn
			}
			return err
		}

		_, err = b.BreakRepository.GetOpen(ctx, employeeID)
		if err == nil {
			return breaks.ErrBreakInProgress
		}
		if !errors.Is(err, breaks.ErrNoActiveBreak) {
			return err
		}

		started, err = b.BreakRepository.Create(ctx, employeeID, session.ID, b.now().UTC())
		return err
	})
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	slog.Debug("break started", "employee_id", employeeID, "break_id", started.ID)
	return breaks.NewBreakResponse(started), nil
}

// EndBreak implements breaks.BreakService.
func (b *BreakServiceImpl) EndBreak(ctx context.Context, employeeID string) (breaks.BreakResponse, error) {
	var ended breaks.Break

	err := b.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := b.BreakRepository.GetOpen(ctx, employeeID)
		if err != nil {
			return err
		}

		end := b.now().UTC()
		if end.Before(open.BreakStart) {
			end = open.BreakStart
		}

		ended, err = b.BreakRepository.Close(ctx, open.ID, end, breaks.MinutesBetween(open.BreakStart, end))
		return err
	})
	if err != nil {
		return breaks.BreakResponse{}, err
	}

	slog.Debug("break ended", "employee_id", employeeID, "break_id", ended.ID)
	return breaks.NewBreakResponse(ended), nil
}

// History implements breaks.BreakService.
func (b *BreakServiceImpl) History(ctx context.Context, employeeID string, limit int) ([]breaks.BreakResponse, error) {
	limit = attendance.ClampLimit(limit, breaks.DefaultHistoryLimit, breaks.MaxHistoryLimit)

	list, err := b.BreakRepository.ListByEmployee(ctx, employeeID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]breaks.BreakResponse, 0, len(list))
	for _, br := range list {
		responses = append(responses, breaks.NewBreakResponse(br))
	}
	return responses, nil
}
