package metrics

import (
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type RecalculateRequest struct {
	EmployeeID *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Date       string  `json:"date"`

	ParsedDate time.Time `json:"-"`
}

func (r *RecalculateRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	date, ok := validator.IsValidDate(r.Date)
	if !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	r.ParsedDate = date
	return nil
}

type RangeFilter struct {
	From *string
	To   *string

	FromDate *time.Time
	ToDate   *time.Time
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != nil {
		d, ok := validator.IsValidDate(*f.From)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be in YYYY-MM-DD format"})
		} else {
			f.FromDate = &d
		}
	}
	if f.To != nil {
		d, ok := validator.IsValidDate(*f.To)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be in YYYY-MM-DD format"})
		} else {
			f.ToDate = &d
		}
	}
	if len(errs) > 0 {
		return errs
	}

	if f.FromDate != nil && f.ToDate != nil && f.FromDate.After(*f.ToDate) {
		return ErrInvalidRange
	}
	return nil
}

type MetricResponse struct {
	EmployeeID        string  `json:"employee_id"`
	MetricDate        string  `json:"metric_date"`
	AttendanceHours   float64 `json:"attendance_hours"`
	TasksCompleted    int     `json:"tasks_completed"`
	ProductivityScore int     `json:"productivity_score"`
}

func NewMetricResponse(m PerformanceMetric) MetricResponse {
	return MetricResponse{
		EmployeeID:        m.EmployeeID,
		MetricDate:        m.MetricDate.Format(dateLayout),
		AttendanceHours:   m.AttendanceHours,
		TasksCompleted:    m.TasksCompleted,
		ProductivityScore: m.ProductivityScore,
	}
}

type WeeklyReportResponse struct {
	EmployeeID      string  `json:"employee_id"`
	WeekStart       string  `json:"week_start"`
	WeekEnd         string  `json:"week_end"`
	AttendanceHours float64 `json:"attendance_hours"`
	TasksCompleted  int     `json:"tasks_completed"`
	AvgProductivity float64 `json:"avg_productivity"`
	Summary         string  `json:"summary"`
}

func NewWeeklyReportResponse(w WeeklyReport) WeeklyReportResponse {
	return WeeklyReportResponse{
		EmployeeID:      w.EmployeeID,
		WeekStart:       w.WeekStart.Format(dateLayout),
		WeekEnd:         w.WeekEnd.Format(dateLayout),
		AttendanceHours: w.AttendanceHours,
		TasksCompleted:  w.TasksCompleted,
		AvgProductivity: w.AvgProductivity,
		Summary:         w.Summary,
	}
}

type EmployeeAverageResponse struct {
	EmployeeID string  `json:"employee_id"`
	Code       string  `json:"code"`
	Firstname  string  `json:"firstname"`
	Lastname   string  `json:"lastname"`
	AvgScore   float64 `json:"avg_score"`
	Days       int     `json:"days"`
}

// RunSummary reports the outcome of a sweep over all active employees.
type RunSummary struct {
	Date      string `json:"date"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}
