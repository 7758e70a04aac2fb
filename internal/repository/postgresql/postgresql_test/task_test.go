package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepository_Activate(t *testing.T) {
	t.Run("another task already active", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgresql.NewTaskRepository(db)

		mock.ExpectQuery("UPDATE tasks").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_task_active_per_employee"})

		_, err := repo.Activate(context.Background(), "task-1")
		assert.ErrorIs(t, err, task.ErrTaskAlreadyActive)
	})

	t.Run("task no longer pending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgresql.NewTaskRepository(db)

		mock.ExpectQuery("UPDATE tasks").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.Activate(context.Background(), "task-1")
		assert.ErrorIs(t, err, task.ErrTaskAlreadyActive)
	})
}

func TestTaskRepository_CheckViolation(t *testing.T) {
	t.Run("create with unknown priority", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgresql.NewTaskRepository(db)

		mock.ExpectQuery("INSERT INTO tasks").
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "tasks_priority_check"})

		_, err := repo.Create(context.Background(), task.Task{EmployeeID: "emp-1", Title: "t", Priority: task.Priority("urgent")})
		assert.ErrorIs(t, err, task.ErrInvalidTask)
	})

	t.Run("update with unknown priority", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgresql.NewTaskRepository(db)
		priority := task.Priority("urgent")

		mock.ExpectQuery("UPDATE tasks SET").
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "tasks_priority_check"})

		_, err := repo.UpdateByManager(context.Background(), "task-1", "mgr-1", task.UpdateTaskRequest{Priority: &priority})
		assert.ErrorIs(t, err, task.ErrInvalidTask)
	})
}

func TestTaskRepository_MarkCompleted_NotActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTaskRepository(db)

	mock.ExpectQuery("UPDATE tasks").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.MarkCompleted(context.Background(), "task-1", time.Now())
	assert.ErrorIs(t, err, task.ErrNoActiveTask)
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTaskRepository(db)

	mock.ExpectQuery("FROM tasks WHERE id = \\$1 FOR UPDATE").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "task-1")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskRepository_DeleteByManager(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTaskRepository(db)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs("task-1", "mgr-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	n, err := repo.DeleteByManager(context.Background(), "task-1", "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTaskLogRepository_Open_AlreadyOpen(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTaskLogRepository(db)

	mock.ExpectQuery("INSERT INTO task_logs").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_task_log_open"})

	_, err := repo.Open(context.Background(), "task-1", time.Now())
	assert.ErrorIs(t, err, task.ErrTaskAlreadyActive)
}
