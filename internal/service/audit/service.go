package audit

import (
	"context"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(auditRepository audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepository}
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, limit int) ([]audit.EventResponse, error) {
	if limit <= 0 {
		limit = audit.DefaultListLimit
	}
	if limit > audit.MaxListLimit {
		limit = audit.MaxListLimit
	}

	events, err := s.AuditRepository.List(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]audit.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, audit.NewEventResponse(e))
	}
	return responses, nil
}
