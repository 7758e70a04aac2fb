package attendance

import (
	"math"
	"time"
)

// Session is one clock-in/clock-out span. An employee has at most one open session.
type Session struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   *time.Time
	TotalHours *float64
	CreatedAt  time.Time
}

func (s *Session) IsOpen() bool {
	return s.ClockOut == nil
}

// HoursBetween returns the elapsed hours rounded to two decimals.
func HoursBetween(from, to time.Time) float64 {
	return math.Round(to.Sub(from).Hours()*100) / 100
}
