package breaks

import "github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"

var (
	ErrNotClockedIn    = apperr.Precondition("NotClockedIn", "clock in before starting a break")
	ErrBreakInProgress = apperr.Conflict("BreakInProgress", "a break is already in progress")
	ErrNoActiveBreak   = apperr.NotFound("NoActiveBreak", "no active break")
)
