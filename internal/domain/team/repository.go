package team

import (
	"context"
	"time"
)

type TeamRepository interface {
	// Upsert inserts the membership or refreshes assigned_at when it exists.
	Upsert(ctx context.Context, managerID string, employeeID string, assignedAt time.Time) (Membership, error)
	Delete(ctx context.Context, managerID string, employeeID string) (int64, error)
	IsMember(ctx context.Context, managerID string, employeeID string) (bool, error)

	// DeleteByManager and DeleteByEmployee drop every membership on one side.
	DeleteByManager(ctx context.Context, managerID string) (int64, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int64, error)

	// ListMembers is ordered by assigned_at, newest first.
	ListMembers(ctx context.Context, managerID string) ([]Member, error)

	// ListCandidates returns active EMPLOYEE accounts in department ordered by firstname.
	ListCandidates(ctx context.Context, managerID string, department string) ([]Candidate, error)
}
