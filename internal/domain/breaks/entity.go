package breaks

import (
	"math"
	"time"
)

// Break is a pause inside an open attendance session.
type Break struct {
	ID              string
	EmployeeID      string
	AttendanceID    string
	BreakStart      time.Time
	BreakEnd        *time.Time
	DurationMinutes *float64
}

func (b *Break) IsOpen() bool {
	return b.BreakEnd == nil
}

// MinutesBetween returns elapsed minutes rounded to two decimals.
func MinutesBetween(from, to time.Time) float64 {
	return math.Round(to.Sub(from).Minutes()*100) / 100
}
