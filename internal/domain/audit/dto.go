package audit

import "time"

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type EventResponse struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Action    string    `json:"action"`
	Entity    *string   `json:"entity,omitempty"`
	EntityID  *string   `json:"entity_id,omitempty"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		ActorID:   e.ActorID,
		ActorRole: e.ActorRole,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		IPAddress: e.IPAddress,
		UserAgent: e.UserAgent,
		CreatedAt: e.CreatedAt,
	}
}
