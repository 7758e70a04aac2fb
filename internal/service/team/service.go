package team

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

type TeamServiceImpl struct {
	tx database.Transactor
	team.TeamRepository
	account.AccountRepository
	report.ReportRepository
	now func() time.Time
}

func NewTeamService(
	tx database.Transactor,
	teamRepository team.TeamRepository,
	accountRepository account.AccountRepository,
	reportRepository report.ReportRepository,
) team.TeamService {
	return &TeamServiceImpl{
		tx:                tx,
		TeamRepository:    teamRepository,
		AccountRepository: accountRepository,
		ReportRepository:  reportRepository,
		now:               time.Now,
	}
}

func (s *TeamServiceImpl) getManager(ctx context.Context, managerID string) (account.Account, error) {
	manager, err := s.AccountRepository.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, team.ErrManagerNotFound
		}
		return account.Account{}, err
	}
	if manager.Role != account.RoleManager {
		return account.Account{}, team.ErrManagerNotFound
	}
	return manager, nil
}

// GetAvailableEmployees implements team.TeamService.
func (s *TeamServiceImpl) GetAvailableEmployees(ctx context.Context, managerID string) ([]team.CandidateResponse, error) {
	manager, err := s.getManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	responses := make([]team.CandidateResponse, 0)
	if manager.Department == nil {
		return responses, nil
	}

	candidates, err := s.TeamRepository.ListCandidates(ctx, manager.ID, *manager.Department)
	if err != nil {
		return nil, err
	}

	for _, c := range candidates {
		responses = append(responses, team.CandidateResponse{
			EmployeeID: c.EmployeeID,
			Code:       c.Code,
			Firstname:  c.Firstname,
			Lastname:   c.Lastname,
			Email:      c.Email,
			Department: c.Department,
			IsInTeam:   c.IsInTeam,
		})
	}
	return responses, nil
}

// AddTeamMember implements team.TeamService.
func (s *TeamServiceImpl) AddTeamMember(ctx context.Context, managerID string, employeeID string) (team.MembershipResponse, error) {
	req := team.AddMemberRequest{EmployeeID: employeeID}
	if err := req.Validate(); err != nil {
		return team.MembershipResponse{}, err
	}

	var membership team.Membership
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		manager, err := s.getManager(ctx, managerID)
		if err != nil {
			return err
		}

		employee, err := s.AccountRepository.GetByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return team.ErrEmployeeNotFound
			}
			return err
		}
		if employee.Role != account.RoleEmployee {
			return team.ErrNotAnEmployee
		}
		if !account.SameDepartment(manager.Department, employee.Department) {
			return team.ErrDepartmentMismatch
		}

		membership, err = s.TeamRepository.Upsert(ctx, manager.ID, employee.ID, s.now().UTC())
		return err
	})
	if err != nil {
		return team.MembershipResponse{}, err
	}

	slog.Info("team member added", "manager_id", managerID, "employee_id", employeeID)
	return team.MembershipResponse{
		ManagerID:  membership.ManagerID,
		EmployeeID: membership.EmployeeID,
		AssignedAt: membership.AssignedAt,
	}, nil
}

// RemoveTeamMember implements team.TeamService.
func (s *TeamServiceImpl) RemoveTeamMember(ctx context.Context, managerID string, employeeID string) (team.RemoveResult, error) {
	removed, err := s.TeamRepository.Delete(ctx, managerID, employeeID)
	if err != nil {
		return team.RemoveResult{}, err
	}

	if removed > 0 {
		slog.Info("team member removed", "manager_id", managerID, "employee_id", employeeID)
	}
	return team.RemoveResult{Removed: removed}, nil
}

// GetTeamMembers implements team.TeamService.
func (s *TeamServiceImpl) GetTeamMembers(ctx context.Context, managerID string) ([]team.MemberResponse, error) {
	if _, err := s.getManager(ctx, managerID); err != nil {
		return nil, err
	}

	members, err := s.TeamRepository.ListMembers(ctx, managerID)
	if err != nil {
		return nil, err
	}

	responses := make([]team.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, team.MemberResponse{
			EmployeeID:         m.EmployeeID,
			Code:               m.Code,
			Firstname:          m.Firstname,
			Lastname:           m.Lastname,
			Email:              m.Email,
			Department:         m.Department,
			Status:             m.Status,
			AssignedAt:         m.AssignedAt,
			DepartmentMismatch: m.DepartmentMismatch,
		})
	}
	return responses, nil
}

// GetDirectReports implements team.TeamService.
func (s *TeamServiceImpl) GetDirectReports(ctx context.Context, managerID string) ([]account.AccountResponse, error) {
	reports, err := s.AccountRepository.ListByManagerID(ctx, managerID)
	if err != nil {
		return nil, err
	}

	responses := make([]account.AccountResponse, 0, len(reports))
	for _, a := range reports {
		responses = append(responses, account.NewAccountResponse(a))
	}
	return responses, nil
}

// GetTeamReports implements team.TeamService.
func (s *TeamServiceImpl) GetTeamReports(ctx context.Context, managerID string) ([]report.ReportResponse, error) {
	reports, err := s.ReportRepository.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	responses := make([]report.ReportResponse, 0, len(reports))
	for _, r := range reports {
		responses = append(responses, report.NewReportResponse(r))
	}
	return responses, nil
}
