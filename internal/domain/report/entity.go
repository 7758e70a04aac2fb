package report

import "time"

type Type string

const (
	TypeDaily    Type = "daily"
	TypeWeekly   Type = "weekly"
	TypeIncident Type = "incident"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeIncident:
		return true
	}
	return false
}

// Report is a free-text report submitted by an employee or manager.
type Report struct {
	ID         string
	EmployeeID string
	Type       Type
	ReportDate time.Time
	Content    string
	CreatedAt  time.Time

	// Join
	EmployeeCode string
	EmployeeName string
}
