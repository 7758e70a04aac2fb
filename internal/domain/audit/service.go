package audit

import "context"

type AuditService interface {
	List(ctx context.Context, limit int) ([]EventResponse, error)
}
