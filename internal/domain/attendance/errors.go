package attendance

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

// Attendance domain errors
var (
	ErrAlreadyClockedIn = apperr.Conflict("AlreadyClockedIn", "you are already clocked in")
	ErrNoActiveSession  = apperr.NotFound("NoActiveSession", "no active attendance session")
)
