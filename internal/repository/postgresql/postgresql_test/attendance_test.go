package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestAttendanceRepository_Create_OpenSessionExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectQuery("INSERT INTO attendance_sessions").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_open_session"})

	_, err := repo.Create(context.Background(), "emp-1", time.Now())
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceRepository_GetOpenSession_None(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectQuery("FROM attendance_sessions").
		WithArgs("emp-1").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetOpenSession(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestAttendanceRepository_Close_AlreadyClosed(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAttendanceRepository(db)

	mock.ExpectQuery("UPDATE attendance_sessions").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Close(context.Background(), "session-1", time.Now(), 8)
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestBreakRepository_Create_OpenBreakExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewBreakRepository(db)

	mock.ExpectQuery("INSERT INTO break_sessions").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_break_open"})

	_, err := repo.Create(context.Background(), "emp-1", "session-1", time.Now())
	assert.ErrorIs(t, err, breaks.ErrBreakInProgress)
}

func TestBreakRepository_GetOpen_None(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewBreakRepository(db)

	mock.ExpectQuery("FROM break_sessions").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetOpen(context.Background(), "emp-1")
	assert.ErrorIs(t, err, breaks.ErrNoActiveBreak)
}
