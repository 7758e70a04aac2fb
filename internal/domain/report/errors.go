package report

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

var (
	ErrInvalidRange  = apperr.Validation("InvalidRange", "from must not be after to")
	ErrInvalidReport = apperr.Validation("InvalidReport", "report violates a field constraint")
)
