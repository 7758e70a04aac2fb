package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, employee_id, clock_in, clock_out, total_hours, created_at`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanSession(row rowScanner) (attendance.Session, error) {
	var s attendance.Session
	err := row.Scan(&s.ID, &s.EmployeeID, &s.ClockIn, &s.ClockOut, &s.TotalHours, &s.CreatedAt)
	return s, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, employeeID string, clockIn time.Time) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_sessions (employee_id, clock_in)
		VALUES ($1, $2)
		RETURNING ` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, clockIn))
	if err != nil {
		if isUniqueViolation(err, "uq_attendance_open_session") {
			return attendance.Session{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Session{}, translateError("failed to create attendance session", err)
	}

	return s, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
		FOR UPDATE
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNoActiveSession
		}
		return attendance.Session{}, translateError("failed to get open session", err)
	}

	return s, nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, clockOut time.Time, totalHours float64) (attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_sessions
		SET clock_out = $1, total_hours = $2
		WHERE id = $3 AND clock_out IS NULL
		RETURNING ` + sessionColumns

	s, err := scanSession(q.QueryRow(ctx, query, clockOut, totalHours, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Session{}, attendance.ErrNoActiveSession
		}
		return attendance.Session{}, translateError("failed to close attendance session", err)
	}

	return s, nil
}

// GetLatestStartedBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetLatestStartedBetween(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		  AND clock_in >= $2
		  AND clock_in < $3
		ORDER BY clock_in DESC
		LIMIT 1
	`

	s, err := scanSession(q.QueryRow(ctx, query, employeeID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("failed to get today's session", err)
	}

	return &s, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE employee_id = $1
		ORDER BY clock_in DESC
		LIMIT $2
	`

	return a.querySessions(ctx, q, query, employeeID, limit)
}

// ListOpenStartedBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenStartedBefore(ctx context.Context, before time.Time) ([]attendance.Session, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE clock_out IS NULL
		  AND clock_in < $1
		ORDER BY clock_in
	`

	return a.querySessions(ctx, q, query, before)
}

func (a *attendanceRepository) querySessions(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Session, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list attendance sessions", err)
	}
	defer rows.Close()

	sessions := make([]attendance.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sessions, nil
}
