package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
)

type teamRepository struct {
	s *Store
}

func (r *teamRepository) Upsert(ctx context.Context, managerID string, employeeID string, assignedAt time.Time) (team.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[managerID]; !ok {
		return team.Membership{}, team.ErrEmployeeNotFound
	}
	if _, ok := r.s.accounts[employeeID]; !ok {
		return team.Membership{}, team.ErrEmployeeNotFound
	}

	m := team.Membership{ManagerID: managerID, EmployeeID: employeeID, AssignedAt: assignedAt}
	r.s.memberships[membershipKey{managerID, employeeID}] = m
	return m, nil
}

func (r *teamRepository) Delete(ctx context.Context, managerID string, employeeID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := membershipKey{managerID, employeeID}
	if _, ok := r.s.memberships[key]; !ok {
		return 0, nil
	}
	delete(r.s.memberships, key)
	return 1, nil
}

func (r *teamRepository) deleteWhere(match func(membershipKey) bool) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int64
	for key := range r.s.memberships {
		if match(key) {
			delete(r.s.memberships, key)
			removed++
		}
	}
	return removed
}

func (r *teamRepository) DeleteByManager(ctx context.Context, managerID string) (int64, error) {
	return r.deleteWhere(func(k membershipKey) bool { return k.managerID == managerID }), nil
}

func (r *teamRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int64, error) {
	return r.deleteWhere(func(k membershipKey) bool { return k.employeeID == employeeID }), nil
}

func (r *teamRepository) IsMember(ctx context.Context, managerID string, employeeID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.memberships[membershipKey{managerID, employeeID}]
	return ok, nil
}

func (r *teamRepository) ListMembers(ctx context.Context, managerID string) ([]team.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	manager := r.s.accounts[managerID]
	members := make([]team.Member, 0)
	for key, m := range r.s.memberships {
		if key.managerID != managerID {
			continue
		}
		e := r.s.accounts[key.employeeID]
		members = append(members, team.Member{
			EmployeeID:         e.ID,
			Code:               e.Code,
			Firstname:          e.Firstname,
			Lastname:           e.Lastname,
			Email:              e.Email,
			Department:         e.Department,
			Status:             string(e.Status),
			AssignedAt:         m.AssignedAt,
			DepartmentMismatch: departmentDistinct(manager.Department, e.Department),
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].AssignedAt.After(members[j].AssignedAt) })
	return members, nil
}

// departmentDistinct mirrors SQL IS DISTINCT FROM.
func departmentDistinct(a, b *string) bool {
	if a == nil || b == nil {
		return a != b
	}
	return *a != *b
}

func (r *teamRepository) ListCandidates(ctx context.Context, managerID string, department string) ([]team.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	candidates := make([]team.Candidate, 0)
	for _, a := range r.s.accounts {
		if a.Role != account.RoleEmployee || !a.IsActive() || a.Department == nil || *a.Department != department {
			continue
		}
		_, inTeam := r.s.memberships[membershipKey{managerID, a.ID}]
		candidates = append(candidates, team.Candidate{
			EmployeeID: a.ID,
			Code:       a.Code,
			Firstname:  a.Firstname,
			Lastname:   a.Lastname,
			Email:      a.Email,
			Department: a.Department,
			IsInTeam:   inTeam,
		})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Firstname < candidates[j].Firstname })
	return candidates, nil
}
