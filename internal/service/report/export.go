package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/export"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportServiceImpl struct {
	report.ReportRepository
	metrics.MetricsRepository
	now func() time.Time
}

func NewExportService(reportRepository report.ReportRepository, metricsRepository metrics.MetricsRepository) report.ExportService {
	return &ExportServiceImpl{
		ReportRepository:  reportRepository,
		MetricsRepository: metricsRepository,
		now:               time.Now,
	}
}

func (s *ExportServiceImpl) fileName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, s.now().UTC().Format("20060102_150405"), ext)
}

// ReportsCSV implements report.ExportService.
func (s *ExportServiceImpl) ReportsCSV(ctx context.Context, filter report.ListFilter) (report.File, error) {
	if err := filter.Validate(); err != nil {
		return report.File{}, err
	}

	reports, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return report.File{}, err
	}

	table := export.Table{
		Sheet:   "Reports",
		Headers: []string{"ID", "Employee Code", "Employee Name", "Type", "Report Date", "Content", "Submitted At"},
	}
	for _, r := range reports {
		table = table.AddRow(
			r.ID,
			r.EmployeeCode,
			r.EmployeeName,
			string(r.Type),
			r.ReportDate.Format(time.DateOnly),
			r.Content,
			r.CreatedAt.UTC().Format(time.RFC3339),
		)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		return report.File{}, err
	}

	return report.File{
		Name:        s.fileName("reports", "csv"),
		ContentType: contentTypeCSV,
		Data:        buf.Bytes(),
	}, nil
}

// MetricsXLSX implements report.ExportService.
func (s *ExportServiceImpl) MetricsXLSX(ctx context.Context, filter metrics.RangeFilter) (report.File, error) {
	if err := filter.Validate(); err != nil {
		return report.File{}, err
	}

	daily, err := s.MetricsRepository.ListBetween(ctx, filter.FromDate, filter.ToDate)
	if err != nil {
		return report.File{}, err
	}
	averages, err := s.MetricsRepository.AverageByEmployee(ctx)
	if err != nil {
		return report.File{}, err
	}

	dailyTable := export.Table{
		Sheet:   "Daily Metrics",
		Headers: []string{"Employee ID", "Date", "Attendance Hours", "Tasks Completed", "Productivity Score"},
	}
	for _, m := range daily {
		dailyTable = dailyTable.AddRow(
			m.EmployeeID,
			m.MetricDate.Format(time.DateOnly),
			m.AttendanceHours,
			m.TasksCompleted,
			m.ProductivityScore,
		)
	}

	summaryTable := export.Table{
		Sheet:   "Summary",
		Headers: []string{"Employee Code", "First Name", "Last Name", "Average Score", "Days Recorded"},
	}
	for _, a := range averages {
		summaryTable = summaryTable.AddRow(a.Code, a.Firstname, a.Lastname, a.AvgScore, a.Days)
	}

	buf, err := export.XLSX(dailyTable, summaryTable)
	if err != nil {
		return report.File{}, err
	}

	return report.File{
		Name:        s.fileName("metrics", "xlsx"),
		ContentType: contentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}
