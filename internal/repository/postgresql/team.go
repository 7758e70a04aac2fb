package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.TeamRepository {
	return &teamRepositoryImpl{db: db}
}

// Upsert implements team.TeamRepository.
func (r *teamRepositoryImpl) Upsert(ctx context.Context, managerID string, employeeID string, assignedAt time.Time) (team.Membership, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO team_memberships (manager_id, employee_id, assigned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (manager_id, employee_id)
		DO UPDATE SET assigned_at = EXCLUDED.assigned_at
		RETURNING manager_id, employee_id, assigned_at
	`

	var m team.Membership
	err := q.QueryRow(ctx, query, managerID, employeeID, assignedAt).Scan(&m.ManagerID, &m.EmployeeID, &m.AssignedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return team.Membership{}, team.ErrEmployeeNotFound
		}
		return team.Membership{}, translateError("failed to upsert team membership", err)
	}
	return m, nil
}

// Delete implements team.TeamRepository.
func (r *teamRepositoryImpl) Delete(ctx context.Context, managerID string, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM team_memberships WHERE manager_id = $1 AND employee_id = $2`

	commandTag, err := q.Exec(ctx, query, managerID, employeeID)
	if err != nil {
		return 0, translateError("failed to remove team member", err)
	}
	return commandTag.RowsAffected(), nil
}

// DeleteByManager implements team.TeamRepository.
func (r *teamRepositoryImpl) DeleteByManager(ctx context.Context, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM team_memberships WHERE manager_id = $1`, managerID)
	if err != nil {
		return 0, translateError("failed to clear team", err)
	}
	return commandTag.RowsAffected(), nil
}

// DeleteByEmployee implements team.TeamRepository.
func (r *teamRepositoryImpl) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM team_memberships WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, translateError("failed to remove employee from teams", err)
	}
	return commandTag.RowsAffected(), nil
}

// IsMember implements team.TeamRepository.
func (r *teamRepositoryImpl) IsMember(ctx context.Context, managerID string, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM team_memberships WHERE manager_id = $1 AND employee_id = $2)`

	var exists bool
	if err := q.QueryRow(ctx, query, managerID, employeeID).Scan(&exists); err != nil {
		return false, translateError("failed to check team membership", err)
	}
	return exists, nil
}

// ListMembers implements team.TeamRepository.
func (r *teamRepositoryImpl) ListMembers(ctx context.Context, managerID string) ([]team.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.code, e.firstname, e.lastname, e.email, e.department, e.status, tm.assigned_at,
			(e.department IS DISTINCT FROM m.department) AS department_mismatch
		FROM team_memberships tm
		JOIN accounts e ON e.id = tm.employee_id
		JOIN accounts m ON m.id = tm.manager_id
		WHERE tm.manager_id = $1
		ORDER BY tm.assigned_at DESC
	`

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, translateError("failed to list team members", err)
	}
	defer rows.Close()

	members := make([]team.Member, 0)
	for rows.Next() {
		var m team.Member
		err := rows.Scan(
			&m.EmployeeID, &m.Code, &m.Firstname, &m.Lastname, &m.Email, &m.Department,
			&m.Status, &m.AssignedAt, &m.DepartmentMismatch,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

// ListCandidates implements team.TeamRepository.
func (r *teamRepositoryImpl) ListCandidates(ctx context.Context, managerID string, department string) ([]team.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.code, a.firstname, a.lastname, a.email, a.department,
			(tm.employee_id IS NOT NULL) AS is_in_team
		FROM accounts a
		LEFT JOIN team_memberships tm ON tm.employee_id = a.id AND tm.manager_id = $1
		WHERE a.department = $2
		  AND a.role = $3
		  AND a.status = $4
		ORDER BY a.firstname
	`

	rows, err := q.Query(ctx, query, managerID, department, account.RoleEmployee, account.StatusActive)
	if err != nil {
		return nil, translateError("failed to list available employees", err)
	}
	defer rows.Close()

	candidates := make([]team.Candidate, 0)
	for rows.Next() {
		var c team.Candidate
		if err := rows.Scan(&c.EmployeeID, &c.Code, &c.Firstname, &c.Lastname, &c.Email, &c.Department, &c.IsInTeam); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return candidates, nil
}
