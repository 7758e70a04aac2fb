package audit

import "context"

type AuditRepository interface {
	Sink
	List(ctx context.Context, limit int) ([]Event, error)
}
