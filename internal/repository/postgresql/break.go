package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const breakColumns = `id, employee_id, attendance_id, break_start, break_end, duration_minutes`

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) breaks.BreakRepository {
	return &breakRepository{db: db}
}

func scanBreak(row rowScanner) (breaks.Break, error) {
	var b breaks.Break
	err := row.Scan(&b.ID, &b.EmployeeID, &b.AttendanceID, &b.BreakStart, &b.BreakEnd, &b.DurationMinutes)
	return b, err
}

// Create implements breaks.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, employeeID string, attendanceID string, start time.Time) (breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_sessions (employee_id, attendance_id, break_start)
		VALUES ($1, $2, $3)
		RETURNING ` + breakColumns

	b, err := scanBreak(q.QueryRow(ctx, query, employeeID, attendanceID, start))
	if err != nil {
		if isUniqueViolation(err, "uq_break_open") {
			return breaks.Break{}, breaks.ErrBreakInProgress
		}
		return breaks.Break{}, translateError("failed to start break", err)
	}
	return b, nil
}

// GetOpen implements breaks.BreakRepository.
func (r *breakRepository) GetOpen(ctx context.Context, employeeID string) (breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_sessions
		WHERE employee_id = $1 AND break_end IS NULL
		ORDER BY break_start DESC
		LIMIT 1
		FOR UPDATE
	`

	b, err := scanBreak(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return breaks.Break{}, breaks.ErrNoActiveBreak
		}
		return breaks.Break{}, translateError("failed to get open break", err)
	}
	return b, nil
}

// Close implements breaks.BreakRepository.
func (r *breakRepository) Close(ctx context.Context, id string, end time.Time, durationMinutes float64) (breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_sessions
		SET break_end = $1, duration_minutes = $2
		WHERE id = $3 AND break_end IS NULL
		RETURNING ` + breakColumns

	b, err := scanBreak(q.QueryRow(ctx, query, end, durationMinutes, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return breaks.Break{}, breaks.ErrNoActiveBreak
		}
		return breaks.Break{}, translateError("failed to end break", err)
	}
	return b, nil
}

// ListByEmployee implements breaks.BreakRepository.
func (r *breakRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]breaks.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + breakColumns + `
		FROM break_sessions
		WHERE employee_id = $1
		ORDER BY break_start DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, translateError("failed to list breaks", err)
	}
	defer rows.Close()

	result := make([]breaks.Break, 0)
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		result = append(result, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
