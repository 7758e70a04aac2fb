package http

import (
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{auditService: auditService}
}

// List implements AuditHandler.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r)
	if !ok {
		response.BadRequest(w, "limit must be a number", nil)
		return
	}

	events, err := h.auditService.List(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, events, &response.Meta{Limit: limit, TotalItems: int64(len(events))})
}
