package report

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
)

type ReportServiceImpl struct {
	report.ReportRepository
}

func NewReportService(reportRepository report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		ReportRepository: reportRepository,
	}
}

func toReportResponses(reports []report.Report) []report.ReportResponse {
	responses := make([]report.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, report.NewReportResponse(r))
	}
	return responses
}

// Submit implements report.ReportService.
func (s *ReportServiceImpl) Submit(ctx context.Context, employeeID string, req report.SubmitReportRequest) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	created, err := s.ReportRepository.Create(ctx, report.Report{
		EmployeeID: employeeID,
		Type:       req.Type,
		ReportDate: req.ParsedDate,
		Content:    req.Content,
	})
	if err != nil {
		return report.ReportResponse{}, err
	}

	slog.Info("report submitted", "report_id", created.ID, "employee_id", employeeID, "type", created.Type)
	return report.NewReportResponse(created), nil
}

// ListMine implements report.ReportService.
func (s *ReportServiceImpl) ListMine(ctx context.Context, employeeID string) ([]report.ReportResponse, error) {
	reports, err := s.ReportRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return toReportResponses(reports), nil
}

// ListAll implements report.ReportService.
func (s *ReportServiceImpl) ListAll(ctx context.Context, filter report.ListFilter) ([]report.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	reports, err := s.ReportRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toReportResponses(reports), nil
}
