package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/credential"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

// maxCodeAttempts bounds retries when a generated code collides with an existing one.
const maxCodeAttempts = 3

type AccountServiceImpl struct {
	tx database.Transactor
	account.AccountRepository
	team.TeamRepository
	hasher *credential.Hasher
}

func NewAccountService(tx database.Transactor, accountRepository account.AccountRepository, teamRepository team.TeamRepository, hasher *credential.Hasher) account.AccountService {
	return &AccountServiceImpl{
		tx:                tx,
		AccountRepository: accountRepository,
		TeamRepository:    teamRepository,
		hasher:            hasher,
	}
}

func codePrefix(role account.Role) string {
	switch role {
	case account.RoleManager:
		return credential.PrefixManager
	case account.RoleEmployee:
		return credential.PrefixEmployee
	default:
		return credential.PrefixAdmin
	}
}

// createWithCode assigns a fresh code to newAccount and inserts it, retrying on code collisions.
func (s *AccountServiceImpl) createWithCode(ctx context.Context, newAccount account.Account) (account.Account, error) {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := credential.NewAccountCode(codePrefix(newAccount.Role))
		if err != nil {
			return account.Account{}, err
		}
		newAccount.Code = code

		created, err := s.AccountRepository.Create(ctx, newAccount)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, account.ErrCodeExists) {
			return account.Account{}, err
		}
		lastErr = err
		slog.Warn("account code collision, retrying", "attempt", attempt+1, "role", newAccount.Role)
	}
	return account.Account{}, lastErr
}

// CreateAccount implements account.AccountService.
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, req account.CreateAccountRequest) (account.CreateAccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.CreateAccountResponse{}, err
	}

	accessCode, err := credential.NewAccessCode()
	if err != nil {
		return account.CreateAccountResponse{}, err
	}
	hash, err := s.hasher.Hash(accessCode)
	if err != nil {
		return account.CreateAccountResponse{}, err
	}

	email := req.Email
	newAccount := account.Account{
		Role:           req.Role,
		Email:          &email,
		Firstname:      req.Firstname,
		Lastname:       strings.TrimSpace(req.Lastname),
		Telephone:      req.Telephone,
		Address:        req.Address,
		CredentialHash: hash,
		PasswordSet:    false,
		Status:         account.StatusActive,
		Department:     req.Department,
	}
	if req.CreatedBy != "" {
		createdBy := req.CreatedBy
		newAccount.CreatedBy = &createdBy
	}

	created, err := s.createWithCode(ctx, newAccount)
	if err != nil {
		return account.CreateAccountResponse{}, err
	}

	slog.Info("account created", "code", created.Code, "role", created.Role, "created_by", req.CreatedBy)

	return account.CreateAccountResponse{
		Account:    account.NewAccountResponse(created),
		AccessCode: accessCode,
	}, nil
}

// CreateAdmin implements account.AccountService.
func (s *AccountServiceImpl) CreateAdmin(ctx context.Context, req account.CreateAdminRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return account.AccountResponse{}, err
	}

	firstname, lastname := splitName(req.Name)
	email := req.Email
	created, err := s.createWithCode(ctx, account.Account{
		Role:           req.Role,
		Email:          &email,
		Firstname:      firstname,
		Lastname:       lastname,
		CredentialHash: hash,
		PasswordSet:    true,
		Status:         account.StatusActive,
	})
	if err != nil {
		return account.AccountResponse{}, err
	}

	slog.Info("admin account created", "code", created.Code, "role", created.Role)
	return account.NewAccountResponse(created), nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// EnsureBootstrapAdmin implements account.AccountService.
func (s *AccountServiceImpl) EnsureBootstrapAdmin(ctx context.Context, email string, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	count, err := s.AccountRepository.CountByRole(ctx, account.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to count super admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.CreateAdmin(ctx, account.CreateAdminRequest{
		Name:     "Super Admin",
		Email:    email,
		Password: password,
		Role:     account.RoleSuperAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// List implements account.AccountService.
func (s *AccountServiceImpl) List(ctx context.Context, filter account.ListFilter) ([]account.AccountResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.AccountRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]account.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		responses = append(responses, account.NewAccountResponse(a))
	}
	return responses, nil
}

// GetByCode implements account.AccountService.
func (s *AccountServiceImpl) GetByCode(ctx context.Context, code string) (account.AccountResponse, error) {
	a, err := s.AccountRepository.GetByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(a), nil
}

// Update implements account.AccountService.
func (s *AccountServiceImpl) Update(ctx context.Context, code string, req account.UpdateAccountRequest) (account.AccountResponse, error) {
	if err := req.Validate(); err != nil {
		return account.AccountResponse{}, err
	}

	updated, err := s.AccountRepository.Update(ctx, strings.ToUpper(code), req)
	if err != nil {
		return account.AccountResponse{}, err
	}
	return account.NewAccountResponse(updated), nil
}

// SetStatus implements account.AccountService.
func (s *AccountServiceImpl) SetStatus(ctx context.Context, code string, status account.Status) error {
	req := account.SetStatusRequest{Status: status}
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.AccountRepository.UpdateStatus(ctx, strings.ToUpper(code), status); err != nil {
		return err
	}
	slog.Info("account status changed", "code", code, "status", status)
	return nil
}

// ChangeRole implements account.AccountService.
func (s *AccountServiceImpl) ChangeRole(ctx context.Context, code string, role account.Role) error {
	if !role.IsStaff() {
		return account.ErrInvalidRole
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.AccountRepository.GetByCode(ctx, strings.ToUpper(code))
		if err != nil {
			return err
		}
		if !current.Role.IsStaff() {
			return account.ErrInvalidRole
		}
		if current.Role == role {
			return nil
		}

		if err := s.AccountRepository.UpdateRole(ctx, current.Code, role); err != nil {
			return err
		}

		// A demoted manager releases its direct reports and team. A promoted
		// employee leaves the teams it belonged to.
		switch role {
		case account.RoleEmployee:
			reports, err := s.AccountRepository.ClearManager(ctx, current.ID)
			if err != nil {
				return err
			}
			members, err := s.TeamRepository.DeleteByManager(ctx, current.ID)
			if err != nil {
				return err
			}
			slog.Info("manager demoted", "code", current.Code, "released_reports", reports, "released_members", members)
		case account.RoleManager:
			if _, err := s.TeamRepository.DeleteByEmployee(ctx, current.ID); err != nil {
				return err
			}
		}

		slog.Info("account role changed", "code", current.Code, "from", current.Role, "to", role)
		return nil
	})
}

// AssignManager implements account.AccountService.
func (s *AccountServiceImpl) AssignManager(ctx context.Context, req account.AssignManagerRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		manager, err := s.AccountRepository.GetByID(ctx, req.ManagerID)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound) {
				return account.ErrManagerNotFound
			}
			return err
		}
		if manager.Role != account.RoleManager {
			return account.ErrInvalidManager
		}

		employee, err := s.AccountRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		if employee.Role != account.RoleEmployee {
			return account.ErrInvalidRole
		}

		return s.AccountRepository.AssignManager(ctx, employee.ID, manager.ID)
	})
}
