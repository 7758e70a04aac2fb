package team

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

var (
	ErrManagerNotFound    = apperr.NotFound("ManagerNotFound", "manager not found")
	ErrEmployeeNotFound   = apperr.NotFound("EmployeeNotFound", "employee not found")
	ErrDepartmentMismatch = apperr.Validation("DepartmentMismatch", "employee must be in the manager's department")
	ErrNotAnEmployee      = apperr.Validation("NotAnEmployee", "only employees can be added to a team")
	ErrMembershipNotFound = apperr.NotFound("MembershipNotFound", "employee is not in this team")
)
