package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, manager_id, employee_id, title, description, priority, deadline, status, completed_at, created_at, updated_at`

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row rowScanner) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.ManagerID, &t.EmployeeID, &t.Title, &t.Description, &t.Priority,
		&t.Deadline, &t.Status, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

func (r *taskRepositoryImpl) queryOne(ctx context.Context, op string, query string, args ...interface{}) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return task.Task{}, err
		}
		if isUniqueViolation(err, "uq_task_active_per_employee") {
			return task.Task{}, task.ErrTaskAlreadyActive
		}
		if isForeignKeyViolation(err) {
			return task.Task{}, task.ErrEmployeeNotFound
		}
		if isCheckViolation(err) {
			return task.Task{}, task.ErrInvalidTask
		}
		return task.Task{}, translateError(op, err)
	}
	return t, nil
}

func (r *taskRepositoryImpl) queryMany(ctx context.Context, op string, query string, args ...interface{}) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, nil
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	query := `
		INSERT INTO tasks (manager_id, employee_id, title, description, priority, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns

	return r.queryOne(ctx, "failed to create task", query,
		newTask.ManagerID,
		newTask.EmployeeID,
		newTask.Title,
		newTask.Description,
		newTask.Priority,
		newTask.Deadline,
		task.StatusPending,
	)
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 FOR UPDATE`
	return r.queryOne(ctx, "failed to get task", query, id)
}

// Activate implements task.TaskRepository.
func (r *taskRepositoryImpl) Activate(ctx context.Context, id string) (task.Task, error) {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + taskColumns

	t, err := r.queryOne(ctx, "failed to activate task", query, task.StatusActive, id, task.StatusPending)
	if errors.Is(err, task.ErrTaskNotFound) {
		// The row exists (the caller locked it) but is no longer pending.
		return task.Task{}, task.ErrTaskAlreadyActive
	}
	return t, err
}

// MarkCompleted implements task.TaskRepository.
func (r *taskRepositoryImpl) MarkCompleted(ctx context.Context, id string, completedAt time.Time) (task.Task, error) {
	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + taskColumns

	t, err := r.queryOne(ctx, "failed to complete task", query, task.StatusCompleted, completedAt, id, task.StatusActive)
	if errors.Is(err, task.ErrTaskNotFound) {
		return task.Task{}, task.ErrNoActiveTask
	}
	return t, err
}

// ListByEmployee implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, status *task.Status) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE employee_id = $1`
	args := []interface{}{employeeID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	return r.queryMany(ctx, "failed to list employee tasks", query, args...)
}

// ListByManager implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE manager_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, "failed to list manager tasks", query, managerID)
}

// UpdateByManager implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateByManager(ctx context.Context, id string, managerID string, req task.UpdateTaskRequest) (task.Task, error) {
	// Build dynamic update query
	query := `UPDATE tasks SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIdx)
		args = append(args, *req.Title)
		argIdx++
	}
	if req.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIdx)
		args = append(args, *req.Description)
		argIdx++
	}
	if req.Priority != nil {
		query += fmt.Sprintf(", priority = $%d", argIdx)
		args = append(args, *req.Priority)
		argIdx++
	}
	if req.ParsedDeadline != nil {
		query += fmt.Sprintf(", deadline = $%d", argIdx)
		args = append(args, *req.ParsedDeadline)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND manager_id = $%d RETURNING %s", argIdx, argIdx+1, taskColumns)
	args = append(args, id, managerID)

	return r.queryOne(ctx, "failed to update task", query, args...)
}

// DeleteByManager implements task.TaskRepository.
func (r *taskRepositoryImpl) DeleteByManager(ctx context.Context, id string, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND manager_id = $2`, id, managerID)
	if err != nil {
		return 0, translateError("failed to delete task", err)
	}
	return commandTag.RowsAffected(), nil
}

const taskLogColumns = `id, task_id, start_time, end_time, duration_minutes, description`

type taskLogRepositoryImpl struct {
	db *database.DB
}

func NewTaskLogRepository(db *database.DB) task.TaskLogRepository {
	return &taskLogRepositoryImpl{db: db}
}

func scanTaskLog(row rowScanner) (task.Log, error) {
	var l task.Log
	err := row.Scan(&l.ID, &l.TaskID, &l.StartTime, &l.EndTime, &l.DurationMinutes, &l.Description)
	return l, err
}

// Open implements task.TaskLogRepository.
func (r *taskLogRepositoryImpl) Open(ctx context.Context, taskID string, start time.Time) (task.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO task_logs (task_id, start_time)
		VALUES ($1, $2)
		RETURNING ` + taskLogColumns

	l, err := scanTaskLog(q.QueryRow(ctx, query, taskID, start))
	if err != nil {
		if isUniqueViolation(err, "uq_task_log_open") {
			return task.Log{}, task.ErrTaskAlreadyActive
		}
		return task.Log{}, translateError("failed to open task log", err)
	}
	return l, nil
}

// GetOpen implements task.TaskLogRepository.
func (r *taskLogRepositoryImpl) GetOpen(ctx context.Context, taskID string) (task.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskLogColumns + `
		FROM task_logs
		WHERE task_id = $1 AND end_time IS NULL
		FOR UPDATE
	`

	l, err := scanTaskLog(q.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Log{}, task.ErrNoActiveTask
		}
		return task.Log{}, translateError("failed to get open task log", err)
	}
	return l, nil
}

// Close implements task.TaskLogRepository.
func (r *taskLogRepositoryImpl) Close(ctx context.Context, id string, end time.Time, durationMinutes float64, description *string) (task.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE task_logs
		SET end_time = $1, duration_minutes = $2, description = $3
		WHERE id = $4 AND end_time IS NULL
		RETURNING ` + taskLogColumns

	l, err := scanTaskLog(q.QueryRow(ctx, query, end, durationMinutes, description, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Log{}, task.ErrNoActiveTask
		}
		return task.Log{}, translateError("failed to close task log", err)
	}
	return l, nil
}

// ListByTask implements task.TaskLogRepository.
func (r *taskLogRepositoryImpl) ListByTask(ctx context.Context, taskID string) ([]task.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + taskLogColumns + ` FROM task_logs WHERE task_id = $1 ORDER BY start_time`

	rows, err := q.Query(ctx, query, taskID)
	if err != nil {
		return nil, translateError("failed to list task logs", err)
	}
	defer rows.Close()

	logs := make([]task.Log, 0)
	for rows.Next() {
		l, err := scanTaskLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task log: %w", err)
		}
		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return logs, nil
}
