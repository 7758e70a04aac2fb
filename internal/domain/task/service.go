package task

import "context"

type TaskService interface {
	// Assign creates a pending task for any employee (admin)
	Assign(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)

	Start(ctx context.Context, employeeID string, taskID string) (TaskWithLogResponse, error)
	Complete(ctx context.Context, employeeID string, taskID string, req CompleteTaskRequest) (TaskWithLogResponse, error)
	ListMyTasks(ctx context.Context, employeeID string, status *Status) ([]TaskResponse, error)
	GetLogs(ctx context.Context, employeeID string, taskID string) ([]LogResponse, error)

	// Manager scoped
	CreateTask(ctx context.Context, managerID string, req CreateTaskRequest) (TaskResponse, error)
	UpdateTask(ctx context.Context, managerID string, taskID string, req UpdateTaskRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, managerID string, taskID string) error
	ListManagerTasks(ctx context.Context, managerID string) ([]TaskResponse, error)
}
