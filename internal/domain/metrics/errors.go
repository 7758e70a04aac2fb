package metrics

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

var (
	ErrEmployeeNotFound = apperr.NotFound("EmployeeNotFound", "employee not found")
	ErrInvalidRange     = apperr.Validation("InvalidRange", "from must not be after to")
)
