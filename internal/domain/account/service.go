package account

import "context"

// AccountService covers the admin-facing identity directory.
type AccountService interface {
	// CreateAccount creates an EMPLOYEE or MANAGER and returns its one-time access code
	CreateAccount(ctx context.Context, req CreateAccountRequest) (CreateAccountResponse, error)

	// CreateAdmin creates an ADMIN or SUPER_ADMIN that signs in with email and password
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (AccountResponse, error)

	// EnsureBootstrapAdmin creates a SUPER_ADMIN when none exists yet
	EnsureBootstrapAdmin(ctx context.Context, email string, password string) (created bool, err error)

	List(ctx context.Context, filter ListFilter) ([]AccountResponse, error)
	GetByCode(ctx context.Context, code string) (AccountResponse, error)
	Update(ctx context.Context, code string, req UpdateAccountRequest) (AccountResponse, error)
	SetStatus(ctx context.Context, code string, status Status) error
	ChangeRole(ctx context.Context, code string, role Role) error
	AssignManager(ctx context.Context, req AssignManagerRequest) error
}
