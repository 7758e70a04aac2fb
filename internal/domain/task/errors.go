package task

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

var (
	ErrTaskNotFound         = apperr.NotFound("TaskNotFound", "task not found")
	ErrNotTaskOwner         = apperr.Authorization("NotTaskOwner", "task is assigned to another employee")
	ErrTaskAlreadyActive    = apperr.Conflict("TaskAlreadyActive", "another task is already active")
	ErrTaskAlreadyCompleted = apperr.Conflict("TaskAlreadyCompleted", "task is already completed")
	ErrNoActiveTask         = apperr.NotFound("NoActiveTask", "task is not active")
	ErrNotTeamMember        = apperr.Authorization("NotTeamMember", "employee is not in your team")
	ErrEmployeeNotFound     = apperr.NotFound("EmployeeNotFound", "employee not found")
	ErrInvalidStatus        = apperr.Validation("InvalidStatus", "status must be one of pending, active, completed")
	ErrEmptyPatch           = apperr.Validation("EmptyPatch", "no fields to update")
	ErrInvalidTask          = apperr.Validation("InvalidTask", "task violates a field constraint")
)
