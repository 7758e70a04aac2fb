package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Log implements audit.Sink.
func (r *auditRepositoryImpl) Log(ctx context.Context, event audit.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_logs (actor_id, actor_role, action, entity, entity_id, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		event.ActorID,
		event.ActorRole,
		event.Action,
		event.Entity,
		event.EntityID,
		event.IPAddress,
		event.UserAgent,
	)
	if err != nil {
		return translateError("failed to write activity log", err)
	}
	return nil
}

// List implements audit.AuditRepository.
func (r *auditRepositoryImpl) List(ctx context.Context, limit int) ([]audit.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, actor_id, actor_role, action, entity, entity_id, ip_address, user_agent, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, translateError("failed to list activity logs", err)
	}
	defer rows.Close()

	events := make([]audit.Event, 0)
	for rows.Next() {
		var e audit.Event
		err := rows.Scan(&e.ID, &e.ActorID, &e.ActorRole, &e.Action, &e.Entity, &e.EntityID, &e.IPAddress, &e.UserAgent, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return events, nil
}
