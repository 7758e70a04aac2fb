package report

import (
	"context"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
)

type ReportService interface {
	Submit(ctx context.Context, employeeID string, req SubmitReportRequest) (ReportResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]ReportResponse, error)
	ListAll(ctx context.Context, filter ListFilter) ([]ReportResponse, error)
}

// ExportService renders reports and metrics as downloadable files
type ExportService interface {
	ReportsCSV(ctx context.Context, filter ListFilter) (File, error)
	MetricsXLSX(ctx context.Context, filter metrics.RangeFilter) (File, error)
}
