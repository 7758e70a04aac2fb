package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
)

type accountRepository struct {
	s *Store
}

func (r *accountRepository) emailTaken(email *string, exceptID string) bool {
	if email == nil {
		return false
	}
	for _, a := range r.s.accounts {
		if a.ID != exceptID && a.Email != nil && strings.EqualFold(*a.Email, *email) {
			return true
		}
	}
	return false
}

func (r *accountRepository) Create(ctx context.Context, newAccount account.Account) (account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.Code == newAccount.Code {
			return account.Account{}, account.ErrCodeExists
		}
	}
	if r.emailTaken(newAccount.Email, "") {
		return account.Account{}, account.ErrEmailExists
	}
	if newAccount.ManagerID != nil {
		if _, ok := r.s.accounts[*newAccount.ManagerID]; !ok {
			return account.Account{}, account.ErrManagerNotFound
		}
	}

	now := r.s.Now()
	newAccount.ID = newID()
	newAccount.CreatedAt = now
	newAccount.UpdatedAt = now
	r.s.accounts[newAccount.ID] = newAccount
	return newAccount, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return account.Account{}, account.ErrAccountNotFound
	}
	return a, nil
}

func (r *accountRepository) find(match func(account.Account) bool) (account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if match(a) {
			return a, nil
		}
	}
	return account.Account{}, account.ErrAccountNotFound
}

func (r *accountRepository) GetByCode(ctx context.Context, code string) (account.Account, error) {
	return r.find(func(a account.Account) bool { return a.Code == code })
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	return r.find(func(a account.Account) bool { return a.Email != nil && strings.EqualFold(*a.Email, email) })
}

func (r *accountRepository) filter(match func(account.Account) bool, less func(a, b account.Account) bool) []account.Account {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]account.Account, 0)
	for _, a := range r.s.accounts {
		if match(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

func (r *accountRepository) List(ctx context.Context, f account.ListFilter) ([]account.Account, error) {
	return r.filter(func(a account.Account) bool {
		if f.Role != nil && a.Role != *f.Role {
			return false
		}
		if f.Status != nil && a.Status != *f.Status {
			return false
		}
		if f.Department != nil && (a.Department == nil || *a.Department != *f.Department) {
			return false
		}
		return true
	}, func(a, b account.Account) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (r *accountRepository) ListByManagerID(ctx context.Context, managerID string) ([]account.Account, error) {
	return r.filter(func(a account.Account) bool {
		return a.ManagerID != nil && *a.ManagerID == managerID
	}, func(a, b account.Account) bool { return a.Firstname < b.Firstname }), nil
}

func (r *accountRepository) ListActiveStaffIDs(ctx context.Context) ([]string, error) {
	staff := r.filter(func(a account.Account) bool {
		return a.IsActive() && a.Role.IsStaff()
	}, func(a, b account.Account) bool { return a.ID < b.ID })

	ids := make([]string, 0, len(staff))
	for _, a := range staff {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// mutate applies fn to the account with code under the store lock.
func (r *accountRepository) mutate(match func(account.Account) bool, fn func(*account.Account) error) (account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, a := range r.s.accounts {
		if !match(a) {
			continue
		}
		if err := fn(&a); err != nil {
			return account.Account{}, err
		}
		a.UpdatedAt = r.s.Now()
		r.s.accounts[id] = a
		return a, nil
	}
	return account.Account{}, account.ErrAccountNotFound
}

func byCode(code string) func(account.Account) bool {
	return func(a account.Account) bool { return a.Code == code }
}

func (r *accountRepository) Update(ctx context.Context, code string, req account.UpdateAccountRequest) (account.Account, error) {
	return r.mutate(byCode(code), func(a *account.Account) error {
		if req.Email != nil && r.emailTaken(req.Email, a.ID) {
			return account.ErrEmailExists
		}
		if req.Firstname != nil {
			a.Firstname = *req.Firstname
		}
		if req.Lastname != nil {
			a.Lastname = *req.Lastname
		}
		if req.Email != nil {
			a.Email = req.Email
		}
		if req.Telephone != nil {
			a.Telephone = req.Telephone
		}
		if req.Address != nil {
			a.Address = req.Address
		}
		if req.Department != nil {
			a.Department = req.Department
		}
		return nil
	})
}

func (r *accountRepository) UpdateStatus(ctx context.Context, code string, status account.Status) error {
	_, err := r.mutate(byCode(code), func(a *account.Account) error {
		a.Status = status
		return nil
	})
	return err
}

func (r *accountRepository) UpdateRole(ctx context.Context, code string, role account.Role) error {
	_, err := r.mutate(byCode(code), func(a *account.Account) error {
		a.Role = role
		if role == account.RoleManager {
			a.ManagerID = nil
		}
		return nil
	})
	return err
}

func (r *accountRepository) UpdateCredential(ctx context.Context, id string, credentialHash string, passwordSet bool) error {
	_, err := r.mutate(func(a account.Account) bool { return a.ID == id }, func(a *account.Account) error {
		a.CredentialHash = credentialHash
		a.PasswordSet = passwordSet
		return nil
	})
	return err
}

func (r *accountRepository) AssignManager(ctx context.Context, employeeID string, managerID string) error {
	r.s.mu.Lock()
	_, managerExists := r.s.accounts[managerID]
	r.s.mu.Unlock()
	if !managerExists {
		return account.ErrManagerNotFound
	}

	_, err := r.mutate(func(a account.Account) bool {
		return a.ID == employeeID && a.Role == account.RoleEmployee
	}, func(a *account.Account) error {
		id := managerID
		a.ManagerID = &id
		return nil
	})
	return err
}

func (r *accountRepository) ClearManager(ctx context.Context, managerID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var cleared int64
	for id, a := range r.s.accounts {
		if a.ManagerID != nil && *a.ManagerID == managerID {
			a.ManagerID = nil
			a.UpdatedAt = r.s.Now()
			r.s.accounts[id] = a
			cleared++
		}
	}
	return cleared, nil
}

func (r *accountRepository) CountByRole(ctx context.Context, role account.Role) (int64, error) {
	return int64(len(r.filter(func(a account.Account) bool { return a.Role == role },
		func(a, b account.Account) bool { return a.ID < b.ID }))), nil
}
