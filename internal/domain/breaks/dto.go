package breaks

import "time"

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 200
)

type BreakResponse struct {
	ID              string     `json:"id"`
	AttendanceID    string     `json:"attendance_id"`
	BreakStart      time.Time  `json:"break_start"`
	BreakEnd        *time.Time `json:"break_end,omitempty"`
	DurationMinutes *float64   `json:"duration_minutes,omitempty"`
}

func NewBreakResponse(b Break) BreakResponse {
	return BreakResponse{
		ID:              b.ID,
		AttendanceID:    b.AttendanceID,
		BreakStart:      b.BreakStart,
		BreakEnd:        b.BreakEnd,
		DurationMinutes: b.DurationMinutes,
	}
}
