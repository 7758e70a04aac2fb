package attendance

import "time"

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 366
)

type SessionResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out,omitempty"`
	TotalHours *float64   `json:"total_hours,omitempty"`
	IsOpen     bool       `json:"is_open"`
	// BreakClosed is set on clock-out when an open break was ended with the session.
	BreakClosed bool `json:"break_closed,omitempty"`
}

func NewSessionResponse(s Session) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		ClockIn:    s.ClockIn,
		ClockOut:   s.ClockOut,
		TotalHours: s.TotalHours,
		IsOpen:     s.IsOpen(),
	}
}

// ClampLimit applies the default and maximum page size for history listings.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
