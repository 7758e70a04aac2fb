package team

import (
	"context"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
)

type TeamService interface {
	GetAvailableEmployees(ctx context.Context, managerID string) ([]CandidateResponse, error)
	AddTeamMember(ctx context.Context, managerID string, employeeID string) (MembershipResponse, error)

	// RemoveTeamMember reports how many rows were removed; zero is not an error.
	RemoveTeamMember(ctx context.Context, managerID string, employeeID string) (RemoveResult, error)
	GetTeamMembers(ctx context.Context, managerID string) ([]MemberResponse, error)
	GetDirectReports(ctx context.Context, managerID string) ([]account.AccountResponse, error)
	GetTeamReports(ctx context.Context, managerID string) ([]report.ReportResponse, error)
}
