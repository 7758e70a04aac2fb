package account

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/credential"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	employeeCode = regexp.MustCompile(`^EMP-[A-Z0-9]{6}$`)
	managerCode  = regexp.MustCompile(`^MGR-[A-Z0-9]{6}$`)
	adminCode    = regexp.MustCompile(`^ADM-[A-Z0-9]{6}$`)
)

func newTestService(t *testing.T) (*AccountServiceImpl, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return &AccountServiceImpl{
		tx:                store.Transactor(),
		AccountRepository: store.Accounts(),
		TeamRepository:    store.Teams(),
		hasher:            credential.NewHasher(4),
	}, store
}

func createStaff(t *testing.T, svc *AccountServiceImpl, role account.Role, email string, department *string) account.CreateAccountResponse {
	t.Helper()
	created, err := svc.CreateAccount(context.Background(), account.CreateAccountRequest{
		Role:       role,
		Firstname:  "Rina",
		Lastname:   "Wijaya",
		Email:      email,
		Department: department,
	})
	require.NoError(t, err)
	return created
}

func TestAccountService_CreateAccount(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	emp := createStaff(t, svc, account.RoleEmployee, " Rina@Example.com ", nil)
	assert.Regexp(t, employeeCode, emp.Account.Code)
	assert.Len(t, emp.AccessCode, 8)
	assert.Equal(t, account.StatusActive, emp.Account.Status)
	require.NotNil(t, emp.Account.Email)
	assert.Equal(t, "rina@example.com", *emp.Account.Email)

	stored, err := store.Accounts().GetByCode(ctx, emp.Account.Code)
	require.NoError(t, err)
	assert.False(t, stored.PasswordSet)
	assert.NotEqual(t, emp.AccessCode, stored.CredentialHash)
	assert.True(t, svc.hasher.Matches(stored.CredentialHash, emp.AccessCode))

	mgr := createStaff(t, svc, account.RoleManager, "boss@example.com", nil)
	assert.Regexp(t, managerCode, mgr.Account.Code)

	_, err = svc.CreateAccount(ctx, account.CreateAccountRequest{
		Role:      account.RoleEmployee,
		Firstname: "Copy",
		Email:     "RINA@example.com",
	})
	assert.ErrorIs(t, err, account.ErrEmailExists)

	_, err = svc.CreateAccount(ctx, account.CreateAccountRequest{
		Role:      account.RoleAdmin,
		Firstname: "Sneaky",
		Email:     "admin@example.com",
	})
	assert.Error(t, err)
}

type collidingAccounts struct {
	account.AccountRepository
	collisions int
}

func (c *collidingAccounts) Create(ctx context.Context, a account.Account) (account.Account, error) {
	if c.collisions > 0 {
		c.collisions--
		return account.Account{}, account.ErrCodeExists
	}
	return c.AccountRepository.Create(ctx, a)
}

func TestAccountService_CreateAccount_RetriesCodeCollision(t *testing.T) {
	svc, store := newTestService(t)

	svc.AccountRepository = &collidingAccounts{AccountRepository: store.Accounts(), collisions: 2}
	_, err := svc.CreateAccount(context.Background(), account.CreateAccountRequest{
		Role: account.RoleEmployee, Firstname: "Lucky", Email: "lucky@example.com",
	})
	require.NoError(t, err)

	svc.AccountRepository = &collidingAccounts{AccountRepository: store.Accounts(), collisions: maxCodeAttempts}
	_, err = svc.CreateAccount(context.Background(), account.CreateAccountRequest{
		Role: account.RoleEmployee, Firstname: "Unlucky", Email: "unlucky@example.com",
	})
	assert.ErrorIs(t, err, account.ErrCodeExists)
}

func TestAccountService_EnsureBootstrapAdmin(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	created, err := svc.EnsureBootstrapAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureBootstrapAdmin(ctx, "root@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureBootstrapAdmin(ctx, "other@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := store.Accounts().GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.RoleSuperAdmin, admin.Role)
	assert.Regexp(t, adminCode, admin.Code)
	assert.True(t, admin.PasswordSet)
	assert.Equal(t, "Super", admin.Firstname)
	assert.Equal(t, "Admin", admin.Lastname)
}

func TestAccountService_ChangeRole(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	emp := createStaff(t, svc, account.RoleEmployee, "emp@example.com", nil)

	require.NoError(t, svc.ChangeRole(ctx, emp.Account.Code, account.RoleManager))
	got, err := store.Accounts().GetByCode(ctx, emp.Account.Code)
	require.NoError(t, err)
	assert.Equal(t, account.RoleManager, got.Role)

	require.NoError(t, svc.ChangeRole(ctx, emp.Account.Code, account.RoleManager))

	assert.ErrorIs(t, svc.ChangeRole(ctx, emp.Account.Code, account.RoleAdmin), account.ErrInvalidRole)

	_, err = svc.CreateAdmin(ctx, account.CreateAdminRequest{
		Name: "Ops", Email: "ops@example.com", Password: "password1", Role: account.RoleAdmin,
	})
	require.NoError(t, err)
	admin, err := store.Accounts().GetByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.ChangeRole(ctx, admin.Code, account.RoleEmployee), account.ErrInvalidRole)

	assert.ErrorIs(t, svc.ChangeRole(ctx, "EMP-ZZZZZZ", account.RoleEmployee), account.ErrAccountNotFound)
}

func TestAccountService_ChangeRole_DemotedManagerReleasesReports(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	teams := store.Teams()

	mgr := createStaff(t, svc, account.RoleManager, "mgr@example.com", nil)
	emp := createStaff(t, svc, account.RoleEmployee, "emp@example.com", nil)
	require.NoError(t, svc.AssignManager(ctx, account.AssignManagerRequest{EmployeeID: emp.Account.ID, ManagerID: mgr.Account.ID}))
	_, err := teams.Upsert(ctx, mgr.Account.ID, emp.Account.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.ChangeRole(ctx, mgr.Account.Code, account.RoleEmployee))

	got, err := store.Accounts().GetByID(ctx, emp.Account.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)

	member, err := teams.IsMember(ctx, mgr.Account.ID, emp.Account.ID)
	require.NoError(t, err)
	assert.False(t, member)

	all, err := store.Accounts().List(ctx, account.ListFilter{})
	require.NoError(t, err)
	for _, a := range all {
		if a.ManagerID == nil {
			continue
		}
		m, err := store.Accounts().GetByID(ctx, *a.ManagerID)
		require.NoError(t, err)
		assert.Equal(t, account.RoleManager, m.Role, "manager_id of %s", a.Code)
	}
}

func TestAccountService_ChangeRole_PromotedEmployeeLeavesTeams(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	teams := store.Teams()

	mgr := createStaff(t, svc, account.RoleManager, "mgr@example.com", nil)
	emp := createStaff(t, svc, account.RoleEmployee, "emp@example.com", nil)
	require.NoError(t, svc.AssignManager(ctx, account.AssignManagerRequest{EmployeeID: emp.Account.ID, ManagerID: mgr.Account.ID}))
	_, err := teams.Upsert(ctx, mgr.Account.ID, emp.Account.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, svc.ChangeRole(ctx, emp.Account.Code, account.RoleManager))

	got, err := store.Accounts().GetByID(ctx, emp.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.RoleManager, got.Role)
	assert.Nil(t, got.ManagerID)

	member, err := teams.IsMember(ctx, mgr.Account.ID, emp.Account.ID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestAccountService_AssignManager(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	emp := createStaff(t, svc, account.RoleEmployee, "emp@example.com", nil)
	other := createStaff(t, svc, account.RoleEmployee, "other@example.com", nil)
	mgr := createStaff(t, svc, account.RoleManager, "mgr@example.com", nil)

	tests := []struct {
		name    string
		req     account.AssignManagerRequest
		wantErr error
	}{
		{
			name:    "manager is an employee",
			req:     account.AssignManagerRequest{EmployeeID: emp.Account.ID, ManagerID: other.Account.ID},
			wantErr: account.ErrInvalidManager,
		},
		{
			name:    "manager missing",
			req:     account.AssignManagerRequest{EmployeeID: emp.Account.ID, ManagerID: "2c9d8e7f-6a5b-4c3d-9e1f-0a1b2c3d4e5f"},
			wantErr: account.ErrManagerNotFound,
		},
		{
			name:    "target is a manager",
			req:     account.AssignManagerRequest{EmployeeID: mgr.Account.ID, ManagerID: mgr.Account.ID},
			wantErr: account.ErrInvalidRole,
		},
		{
			name: "valid",
			req:  account.AssignManagerRequest{EmployeeID: emp.Account.ID, ManagerID: mgr.Account.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AssignManager(ctx, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	got, err := store.Accounts().GetByID(ctx, emp.Account.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ManagerID)
	assert.Equal(t, mgr.Account.ID, *got.ManagerID)
}

func TestAccountService_UpdateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	eng := "Engineering"
	emp := createStaff(t, svc, account.RoleEmployee, "emp@example.com", &eng)
	createStaff(t, svc, account.RoleManager, "mgr@example.com", nil)

	_, err := svc.Update(ctx, emp.Account.Code, account.UpdateAccountRequest{})
	assert.ErrorIs(t, err, account.ErrEmptyPatch)

	phone := "+62 811 000"
	updated, err := svc.Update(ctx, emp.Account.Code, account.UpdateAccountRequest{Telephone: &phone})
	require.NoError(t, err)
	assert.Equal(t, &phone, updated.Telephone)

	require.NoError(t, svc.SetStatus(ctx, emp.Account.Code, account.StatusInactive))

	inactive := account.StatusInactive
	list, err := svc.List(ctx, account.ListFilter{Status: &inactive})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, emp.Account.Code, list[0].Code)

	bogus := account.Role("JANITOR")
	_, err = svc.List(ctx, account.ListFilter{Role: &bogus})
	assert.Error(t, err)

	got, err := svc.GetByCode(ctx, emp.Account.Code)
	require.NoError(t, err)
	assert.Equal(t, account.StatusInactive, got.Status)
}
