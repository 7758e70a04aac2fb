package metrics

import (
	"fmt"
	"math"
	"time"
)

const MaxProductivityScore = 100

// PerformanceMetric is the per-employee, per-calendar-day aggregate.
type PerformanceMetric struct {
	EmployeeID        string
	MetricDate        time.Time
	AttendanceHours   float64
	TasksCompleted    int
	ProductivityScore int
	UpdatedAt         time.Time
}

type WeeklyReport struct {
	EmployeeID      string
	WeekStart       time.Time
	WeekEnd         time.Time
	AttendanceHours float64
	TasksCompleted  int
	AvgProductivity float64
	Summary         string
	UpdatedAt       time.Time
}

type EmployeeAverage struct {
	EmployeeID string
	Code       string
	Firstname  string
	Lastname   string
	AvgScore   float64
	Days       int
}

// ProductivityScore is min(100, round(hours*10 + tasks*15)).
func ProductivityScore(hours float64, tasksCompleted int) int {
	score := math.Round(hours*10 + float64(tasksCompleted)*15)
	if score > MaxProductivityScore {
		return MaxProductivityScore
	}
	if score < 0 {
		return 0
	}
	return int(score)
}

func WeeklySummary(hours float64, tasks int, avgProductivity float64) string {
	return fmt.Sprintf("Attendance Hours: %.2f, Tasks Completed: %d, Avg Productivity: %.2f", hours, tasks, avgProductivity)
}

// CalendarDate truncates t to its calendar day in loc and re-expresses that day
// as midnight UTC, the form stored in DATE columns.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayBounds returns [start, end) of the calendar day date in loc.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
