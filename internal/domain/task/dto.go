package task

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	EmployeeID  string   `json:"employee_id" validate:"required,uuid"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description *string  `json:"description,omitempty"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Deadline    *string  `json:"deadline,omitempty"`

	ParsedDeadline *time.Time `json:"-"`
}

func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Deadline != nil {
		deadline, ok := parseDeadline(*r.Deadline)
		if !ok {
			return validator.ValidationErrors{{
				Field:   "deadline",
				Message: "deadline must be YYYY-MM-DD or an RFC3339 timestamp",
			}}
		}
		r.ParsedDeadline = &deadline
	}
	return nil
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Deadline    *string   `json:"deadline,omitempty"`

	ParsedDeadline *time.Time `json:"-"`
}

func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Priority == nil && r.Deadline == nil
}

func (r *UpdateTaskRequest) Validate() error {
	if r.IsEmpty() {
		return ErrEmptyPatch
	}
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Deadline != nil {
		deadline, ok := parseDeadline(*r.Deadline)
		if !ok {
			return validator.ValidationErrors{{
				Field:   "deadline",
				Message: "deadline must be YYYY-MM-DD or an RFC3339 timestamp",
			}}
		}
		r.ParsedDeadline = &deadline
	}
	return nil
}

type CompleteTaskRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

func (r *CompleteTaskRequest) Validate() error {
	return validator.Struct(r)
}

func parseDeadline(s string) (time.Time, bool) {
	if d, ok := validator.IsValidDate(s); ok {
		return d, true
	}
	return validator.IsValidDateTime(s)
}

type TaskResponse struct {
	ID          string     `json:"id"`
	ManagerID   *string    `json:"manager_id,omitempty"`
	EmployeeID  string     `json:"employee_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      Status     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewTaskResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ManagerID:   t.ManagerID,
		EmployeeID:  t.EmployeeID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Deadline:    t.Deadline,
		Status:      t.Status,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type LogResponse struct {
	ID              string     `json:"id"`
	TaskID          string     `json:"task_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *float64   `json:"duration_minutes,omitempty"`
	Description     *string    `json:"description,omitempty"`
}

type TaskWithLogResponse struct {
	Task TaskResponse `json:"task"`
	Log  LogResponse  `json:"log"`
}

func NewLogResponse(l Log) LogResponse {
	return LogResponse{
		ID:              l.ID,
		TaskID:          l.TaskID,
		StartTime:       l.StartTime,
		EndTime:         l.EndTime,
		DurationMinutes: l.DurationMinutes,
		Description:     l.Description,
	}
}
