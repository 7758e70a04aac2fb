package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
)

type taskRepository struct {
	s *Store
}

func (r *taskRepository) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[newTask.EmployeeID]; !ok {
		return task.Task{}, task.ErrEmployeeNotFound
	}

	now := r.s.Now()
	newTask.ID = newID()
	newTask.CreatedAt = now
	newTask.UpdatedAt = now
	r.s.tasks[newTask.ID] = newTask
	return newTask, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *taskRepository) Activate(ctx context.Context, id string) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.Status != task.StatusPending {
		return task.Task{}, task.ErrTaskAlreadyActive
	}
	for _, other := range r.s.tasks {
		if other.EmployeeID == t.EmployeeID && other.Status == task.StatusActive {
			return task.Task{}, task.ErrTaskAlreadyActive
		}
	}

	t.Status = task.StatusActive
	t.UpdatedAt = r.s.Now()
	r.s.tasks[id] = t
	return t, nil
}

func (r *taskRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.Status != task.StatusActive {
		return task.Task{}, task.ErrNoActiveTask
	}

	t.Status = task.StatusCompleted
	t.CompletedAt = &completedAt
	t.UpdatedAt = completedAt
	r.s.tasks[id] = t
	return t, nil
}

func (r *taskRepository) list(match func(task.Task) bool) []task.Task {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]task.Task, 0)
	for _, t := range r.s.tasks {
		if match(t) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (r *taskRepository) ListByEmployee(ctx context.Context, employeeID string, status *task.Status) ([]task.Task, error) {
	return r.list(func(t task.Task) bool {
		return t.EmployeeID == employeeID && (status == nil || t.Status == *status)
	}), nil
}

func (r *taskRepository) ListByManager(ctx context.Context, managerID string) ([]task.Task, error) {
	return r.list(func(t task.Task) bool {
		return t.ManagerID != nil && *t.ManagerID == managerID
	}), nil
}

func (r *taskRepository) UpdateByManager(ctx context.Context, id string, managerID string, req task.UpdateTaskRequest) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.ManagerID == nil || *t.ManagerID != managerID {
		return task.Task{}, task.ErrTaskNotFound
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.ParsedDeadline != nil {
		t.Deadline = req.ParsedDeadline
	}
	t.UpdatedAt = r.s.Now()
	r.s.tasks[id] = t
	return t, nil
}

func (r *taskRepository) DeleteByManager(ctx context.Context, id string, managerID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.ManagerID == nil || *t.ManagerID != managerID {
		return 0, nil
	}

	delete(r.s.tasks, id)
	for logID, l := range r.s.taskLogs {
		if l.TaskID == id {
			delete(r.s.taskLogs, logID)
		}
	}
	return 1, nil
}

type taskLogRepository struct {
	s *Store
}

func (r *taskLogRepository) Open(ctx context.Context, taskID string, start time.Time) (task.Log, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.taskLogs {
		if l.TaskID == taskID && l.EndTime == nil {
			return task.Log{}, task.ErrTaskAlreadyActive
		}
	}

	l := task.Log{ID: newID(), TaskID: taskID, StartTime: start}
	r.s.taskLogs[l.ID] = l
	return l, nil
}

func (r *taskLogRepository) GetOpen(ctx context.Context, taskID string) (task.Log, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.taskLogs {
		if l.TaskID == taskID && l.EndTime == nil {
			return l, nil
		}
	}
	return task.Log{}, task.ErrNoActiveTask
}

func (r *taskLogRepository) Close(ctx context.Context, id string, end time.Time, durationMinutes float64, description *string) (task.Log, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.taskLogs[id]
	if !ok || l.EndTime != nil {
		return task.Log{}, task.ErrNoActiveTask
	}
	l.EndTime = &end
	l.DurationMinutes = &durationMinutes
	l.Description = description
	r.s.taskLogs[id] = l
	return l, nil
}

func (r *taskLogRepository) ListByTask(ctx context.Context, taskID string) ([]task.Log, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]task.Log, 0)
	for _, l := range r.s.taskLogs {
		if l.TaskID == taskID {
			result = append(result, l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}
