package account

import "context"

type AccountRepository interface {
	Create(ctx context.Context, newAccount Account) (Account, error)
	GetByID(ctx context.Context, id string) (Account, error)
	GetByCode(ctx context.Context, code string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	List(ctx context.Context, filter ListFilter) ([]Account, error)
	ListByManagerID(ctx context.Context, managerID string) ([]Account, error)
	ListActiveStaffIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, code string, req UpdateAccountRequest) (Account, error)
	UpdateStatus(ctx context.Context, code string, status Status) error
	UpdateRole(ctx context.Context, code string, role Role) error
	UpdateCredential(ctx context.Context, id string, credentialHash string, passwordSet bool) error
	AssignManager(ctx context.Context, employeeID string, managerID string) error

	// ClearManager detaches every direct report of managerID.
	ClearManager(ctx context.Context, managerID string) (int64, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}
