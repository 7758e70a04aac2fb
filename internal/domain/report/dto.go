package report

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type SubmitReportRequest struct {
	Type       Type   `json:"type" validate:"required,oneof=daily weekly incident"`
	ReportDate string `json:"report_date"`
	Content    string `json:"content" validate:"required,max=10000"`

	ParsedDate time.Time `json:"-"`
}

func (r *SubmitReportRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if err := validator.Struct(r); err != nil {
		return err
	}
	date, ok := validator.IsValidDate(r.ReportDate)
	if !ok {
		return validator.ValidationErrors{{
			Field:   "report_date",
			Message: "report_date must be in YYYY-MM-DD format",
		}}
	}
	r.ParsedDate = date
	return nil
}

type ListFilter struct {
	Type       *string
	From       *string
	To         *string
	EmployeeID *string

	ParsedType *Type
	FromDate   *time.Time
	ToDate     *time.Time
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil {
		t := Type(*f.Type)
		if !t.IsValid() {
			errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of daily, weekly, incident"})
		} else {
			f.ParsedType = &t
		}
	}
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
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	if f.FromDate != nil && f.ToDate != nil && f.FromDate.After(*f.ToDate) {
		return ErrInvalidRange
	}
	return nil
}

type ReportResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Type         Type      `json:"type"`
	ReportDate   string    `json:"report_date"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewReportResponse(r Report) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeCode: r.EmployeeCode,
		EmployeeName: r.EmployeeName,
		Type:         r.Type,
		ReportDate:   r.ReportDate.Format(dateLayout),
		Content:      r.Content,
		CreatedAt:    r.CreatedAt,
	}
}

// File is a rendered export ready to be streamed to the client.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
