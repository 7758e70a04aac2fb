package http

import (
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
)

type ReportHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ExportReportsCSV(w http.ResponseWriter, r *http.Request)
	ExportMetricsXLSX(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	exportService report.ExportService
}

func NewReportHandler(reportService report.ReportService, exportService report.ExportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		exportService: exportService,
	}
}

func reportFilter(r *http.Request) report.ListFilter {
	return report.ListFilter{
		Type:       optionalQuery(r, "type"),
		From:       optionalQuery(r, "from"),
		To:         optionalQuery(r, "to"),
		EmployeeID: optionalQuery(r, "employee_id"),
	}
}

// Submit implements ReportHandler.
func (h *reportHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var req report.SubmitReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := h.reportService.Submit(r.Context(), actor.AccountID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report submitted", created)
}

// ListMine implements ReportHandler.
func (h *reportHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	reports, err := h.reportService.ListMine(r.Context(), actor.AccountID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

// ListAll implements ReportHandler.
func (h *reportHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListAll(r.Context(), reportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, reports, &response.Meta{TotalItems: int64(len(reports))})
}

// ExportReportsCSV implements ReportHandler.
func (h *reportHandlerImpl) ExportReportsCSV(w http.ResponseWriter, r *http.Request) {
	file, err := h.exportService.ReportsCSV(r.Context(), reportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Name, file.ContentType, file.Data)
}

// ExportMetricsXLSX implements ReportHandler.
func (h *reportHandlerImpl) ExportMetricsXLSX(w http.ResponseWriter, r *http.Request) {
	file, err := h.exportService.MetricsXLSX(r.Context(), rangeFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.Name, file.ContentType, file.Data)
}
