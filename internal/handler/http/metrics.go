package http

import (
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
)

type MetricsHandler interface {
	Mine(w http.ResponseWriter, r *http.Request)
	AdminSummary(w http.ResponseWriter, r *http.Request)
	WeeklyReports(w http.ResponseWriter, r *http.Request)
	Recalculate(w http.ResponseWriter, r *http.Request)
	RunWeekly(w http.ResponseWriter, r *http.Request)
}

type metricsHandlerImpl struct {
	metricsService metrics.MetricsService
}

func NewMetricsHandler(metricsService metrics.MetricsService) MetricsHandler {
	return &metricsHandlerImpl{metricsService: metricsService}
}

func rangeFilter(r *http.Request) metrics.RangeFilter {
	return metrics.RangeFilter{
		From: optionalQuery(r, "from"),
		To:   optionalQuery(r, "to"),
	}
}

// Mine implements MetricsHandler.
func (h *metricsHandlerImpl) Mine(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	result, err := h.metricsService.GetEmployeeMetrics(r.Context(), actor.AccountID, rangeFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AdminSummary implements MetricsHandler.
func (h *metricsHandlerImpl) AdminSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.metricsService.GetAdminSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// WeeklyReports implements MetricsHandler.
func (h *metricsHandlerImpl) WeeklyReports(w http.ResponseWriter, r *http.Request) {
	result, err := h.metricsService.ListWeeklyReports(r.Context(), optionalQuery(r, "employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Recalculate implements MetricsHandler. Without an employee_id the whole
// active workforce is recalculated for the date.
func (h *metricsHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req metrics.RecalculateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if req.EmployeeID != nil {
		result, err := h.metricsService.CalculateDaily(r.Context(), *req.EmployeeID, req.ParsedDate)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Metrics recalculated", result)
		return
	}

	summary, err := h.metricsService.RunDaily(r.Context(), req.ParsedDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Daily metrics run completed", summary)
}

// RunWeekly implements MetricsHandler.
func (h *metricsHandlerImpl) RunWeekly(w http.ResponseWriter, r *http.Request) {
	var req metrics.RecalculateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.metricsService.RunWeekly(r.Context(), req.ParsedDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly report run completed", summary)
}
