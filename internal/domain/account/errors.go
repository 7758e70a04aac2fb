package account

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

var (
	ErrAccountNotFound = apperr.NotFound("AccountNotFound", "account not found")
	ErrManagerNotFound = apperr.NotFound("ManagerNotFound", "manager not found")
	ErrCodeExists      = apperr.Conflict("CodeExists", "account code already exists")
	ErrEmailExists     = apperr.Conflict("EmailExists", "email already registered")
	ErrInvalidManager  = apperr.Validation("InvalidManager", "assigned manager must have role MANAGER")
	ErrInvalidRole     = apperr.Validation("InvalidRole", "role is not allowed for this operation")
	ErrEmptyPatch      = apperr.Validation("EmptyPatch", "no fields to update")
)
