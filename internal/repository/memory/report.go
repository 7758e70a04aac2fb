package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
)

type reportRepository struct {
	s *Store
}

func (r *reportRepository) Create(ctx context.Context, newReport report.Report) (report.Report, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	newReport.ID = newID()
	newReport.CreatedAt = r.s.Now()
	r.s.reports[newReport.ID] = newReport
	return newReport, nil
}

// list joins each report with its author, newest report_date first.
func (r *reportRepository) list(match func(report.Report) bool) []report.Report {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]report.Report, 0)
	for _, rp := range r.s.reports {
		if !match(rp) {
			continue
		}
		author := r.s.accounts[rp.EmployeeID]
		rp.EmployeeCode = author.Code
		rp.EmployeeName = author.FullName()
		result = append(result, rp)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].ReportDate.Equal(result[j].ReportDate) {
			return result[i].ReportDate.After(result[j].ReportDate)
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *reportRepository) ListByEmployee(ctx context.Context, employeeID string) ([]report.Report, error) {
	return r.list(func(rp report.Report) bool { return rp.EmployeeID == employeeID }), nil
}

func (r *reportRepository) List(ctx context.Context, f report.ListFilter) ([]report.Report, error) {
	return r.list(func(rp report.Report) bool {
		if f.ParsedType != nil && rp.Type != *f.ParsedType {
			return false
		}
		if f.EmployeeID != nil && rp.EmployeeID != *f.EmployeeID {
			return false
		}
		return inRange(rp.ReportDate, f.FromDate, f.ToDate)
	}), nil
}

func (r *reportRepository) ListByManager(ctx context.Context, managerID string) ([]report.Report, error) {
	r.s.mu.Lock()
	reports := make(map[string]bool)
	for id, a := range r.s.accounts {
		if a.ManagerID != nil && *a.ManagerID == managerID {
			reports[id] = true
		}
	}
	r.s.mu.Unlock()

	return r.list(func(rp report.Report) bool { return reports[rp.EmployeeID] }), nil
}

type auditRepository struct {
	s *Store
}

func (r *auditRepository) Log(ctx context.Context, event audit.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	event.ID = newID()
	event.CreatedAt = r.s.Now()
	r.s.events = append(r.s.events, event)
	return nil
}

func (r *auditRepository) List(ctx context.Context, limit int) ([]audit.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]audit.Event, 0, len(r.s.events))
	for i := len(r.s.events) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		result = append(result, r.s.events[i])
	}
	return result, nil
}
