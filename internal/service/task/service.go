package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

type TaskServiceImpl struct {
	tx database.Transactor
	task.TaskRepository
	task.TaskLogRepository
	account.AccountRepository
	team.TeamRepository
	now func() time.Time
}

func NewTaskService(
	tx database.Transactor,
	taskRepository task.TaskRepository,
	taskLogRepository task.TaskLogRepository,
	accountRepository account.AccountRepository,
	teamRepository team.TeamRepository,
) task.TaskService {
	return &TaskServiceImpl{
		tx:                tx,
		TaskRepository:    taskRepository,
		TaskLogRepository: taskLogRepository,
		AccountRepository: accountRepository,
		TeamRepository:    teamRepository,
		now:               time.Now,
	}
}

func toTaskResponses(tasks []task.Task) []task.TaskResponse {
	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.NewTaskResponse(t))
	}
	return responses
}

func newPendingTask(req task.CreateTaskRequest, managerID *string) task.Task {
	return task.Task{
		ManagerID:   managerID,
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.ParsedDeadline,
		Status:      task.StatusPending,
	}
}

// Assign implements task.TaskService.
func (s *TaskServiceImpl) Assign(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	employee, err := s.AccountRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return task.TaskResponse{}, task.ErrEmployeeNotFound
		}
		return task.TaskResponse{}, err
	}
	if employee.Role != account.RoleEmployee {
		return task.TaskResponse{}, task.ErrEmployeeNotFound
	}

	created, err := s.TaskRepository.Create(ctx, newPendingTask(req, nil))
	if err != nil {
		return task.TaskResponse{}, err
	}

	slog.Info("task assigned", "task_id", created.ID, "employee_id", created.EmployeeID)
	return task.NewTaskResponse(created), nil
}

// ownedTask loads and locks taskID, checking it belongs to employeeID.
func (s *TaskServiceImpl) ownedTask(ctx context.Context, employeeID string, taskID string) (task.Task, error) {
	t, err := s.TaskRepository.GetByID(ctx, taskID)
	if err != nil {
		return task.Task{}, err
	}
	if t.EmployeeID != employeeID {
		return task.Task{}, task.ErrNotTaskOwner
	}
	return t, nil
}

// Start implements task.TaskService.
func (s *TaskServiceImpl) Start(ctx context.Context, employeeID string, taskID string) (task.TaskWithLogResponse, error) {
	var (
		started task.Task
		log     task.Log
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := s.ownedTask(ctx, employeeID, taskID)
		if err != nil {
			return err
		}

		switch t.Status {
		case task.StatusCompleted:
			return task.ErrTaskAlreadyCompleted
		case task.StatusActive:
			return task.ErrTaskAlreadyActive
		}

		started, err = s.TaskRepository.Activate(ctx, t.ID)
		if err != nil {
			return err
		}

		log, err = s.TaskLogRepository.Open(ctx, t.ID, s.now().UTC())
		return err
	})
	if err != nil {
		return task.TaskWithLogResponse{}, err
	}

	slog.Debug("task started", "task_id", started.ID, "employee_id", employeeID)
	return task.TaskWithLogResponse{
		Task: task.NewTaskResponse(started),
		Log:  task.NewLogResponse(log),
	}, nil
}

// Complete implements task.TaskService.
func (s *TaskServiceImpl) Complete(ctx context.Context, employeeID string, taskID string, req task.CompleteTaskRequest) (task.TaskWithLogResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskWithLogResponse{}, err
	}

	var (
		completed task.Task
		log       task.Log
	)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		t, err := s.ownedTask(ctx, employeeID, taskID)
		if err != nil {
			return err
		}
		if t.Status != task.StatusActive {
			return task.ErrNoActiveTask
		}

		open, err := s.TaskLogRepository.GetOpen(ctx, t.ID)
		if err != nil {
			return err
		}

		end := s.now().UTC()
		if end.Before(open.StartTime) {
			end = open.StartTime
		}
		minutes := task.MinutesBetween(open.StartTime, end)

		log, err = s.TaskLogRepository.Close(ctx, open.ID, end, minutes, req.Description)
		if err != nil {
			return err
		}

		completed, err = s.TaskRepository.MarkCompleted(ctx, t.ID, end)
		return err
	})
	if err != nil {
		return task.TaskWithLogResponse{}, err
	}

	slog.Debug("task completed", "task_id", completed.ID, "employee_id", employeeID)
	return task.TaskWithLogResponse{
		Task: task.NewTaskResponse(completed),
		Log:  task.NewLogResponse(log),
	}, nil
}

// ListMyTasks implements task.TaskService.
func (s *TaskServiceImpl) ListMyTasks(ctx context.Context, employeeID string, status *task.Status) ([]task.TaskResponse, error) {
	if status != nil && !status.IsValid() {
		return nil, task.ErrInvalidStatus
	}

	tasks, err := s.TaskRepository.ListByEmployee(ctx, employeeID, status)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

// GetLogs implements task.TaskService.
func (s *TaskServiceImpl) GetLogs(ctx context.Context, employeeID string, taskID string) ([]task.LogResponse, error) {
	t, err := s.ownedTask(ctx, employeeID, taskID)
	if err != nil {
		return nil, err
	}

	logs, err := s.TaskLogRepository.ListByTask(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]task.LogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, task.NewLogResponse(l))
	}
	return responses, nil
}

// CreateTask implements task.TaskService.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, managerID string, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	isMember, err := s.TeamRepository.IsMember(ctx, managerID, req.EmployeeID)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !isMember {
		return task.TaskResponse{}, task.ErrNotTeamMember
	}

	created, err := s.TaskRepository.Create(ctx, newPendingTask(req, &managerID))
	if err != nil {
		return task.TaskResponse{}, err
	}

	slog.Info("task created", "task_id", created.ID, "manager_id", managerID, "employee_id", created.EmployeeID)
	return task.NewTaskResponse(created), nil
}

// UpdateTask implements task.TaskService.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, managerID string, taskID string, req task.UpdateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	updated, err := s.TaskRepository.UpdateByManager(ctx, taskID, managerID, req)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.NewTaskResponse(updated), nil
}

// DeleteTask implements task.TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, managerID string, taskID string) error {
	removed, err := s.TaskRepository.DeleteByManager(ctx, taskID, managerID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return task.ErrTaskNotFound
	}

	slog.Info("task deleted", "task_id", taskID, "manager_id", managerID)
	return nil
}

// ListManagerTasks implements task.TaskService.
func (s *TaskServiceImpl) ListManagerTasks(ctx context.Context, managerID string) ([]task.TaskResponse, error) {
	tasks, err := s.TaskRepository.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}
