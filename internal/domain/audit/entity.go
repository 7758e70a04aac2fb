package audit

import (
	"context"
	"time"
)

// Event records one successful mutating request.
type Event struct {
	ID        string
	ActorID   string
	ActorRole string
	Action    string
	Entity    *string
	EntityID  *string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Sink receives audit events. Implementations must be safe for concurrent use.
type Sink interface {
	Log(ctx context.Context, event Event) error
}
