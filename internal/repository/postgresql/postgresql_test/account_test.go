package postgresql_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployee() account.Account {
	return account.Account{
		Role:           account.RoleEmployee,
		Code:           "EMP-ABC123",
		Firstname:      "Sinta",
		CredentialHash: "hash",
		Status:         account.StatusActive,
	}
}

func TestAccountRepository_Create_DuplicateCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_code_key"})

	_, err := repo.Create(context.Background(), newEmployee())
	assert.ErrorIs(t, err, account.ErrCodeExists)
}

func TestAccountRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

	_, err := repo.Create(context.Background(), newEmployee())
	assert.ErrorIs(t, err, account.ErrEmailExists)
}

func TestAccountRepository_Create_UnknownManager(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "accounts_manager_id_fkey"})

	_, err := repo.Create(context.Background(), newEmployee())
	assert.ErrorIs(t, err, account.ErrManagerNotFound)
}

func TestAccountRepository_GetByCode_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectQuery("FROM accounts WHERE code = \\$1").
		WithArgs("EMP-NOPE00").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByCode(context.Background(), "EMP-NOPE00")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_GetByID_StoreUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectQuery("FROM accounts WHERE id = \\$1").
		WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	_, err := repo.GetByID(context.Background(), "5b1f3d52-3c2a-4f0e-9a0c-6a1c2d3e4f50")
	require.Error(t, err)

	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindDependency, kind)
}

func TestAccountRepository_UpdateStatus(t *testing.T) {
	t.Run("updates existing account", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgresql.NewAccountRepository(db)

		mock.ExpectExec("UPDATE accounts SET status").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateStatus(context.Background(), "EMP-ABC123", account.StatusInactive)
		assert.NoError(t, err)
	})

	t.Run("unknown code", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgresql.NewAccountRepository(db)

		mock.ExpectExec("UPDATE accounts SET status").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateStatus(context.Background(), "EMP-ABC123", account.StatusInactive)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
	})
}

func TestAccountRepository_AssignManager_NotAnEmployee(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectExec("UPDATE accounts SET manager_id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.AssignManager(context.Background(), "emp-id", "mgr-id")
	assert.ErrorIs(t, err, account.ErrAccountNotFound)
}

func TestAccountRepository_CountByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM accounts WHERE role").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.CountByRole(context.Background(), account.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAccountRepository_ClearManager(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAccountRepository(db)

	mock.ExpectExec("UPDATE accounts SET manager_id = NULL").
		WithArgs("mgr-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	cleared, err := repo.ClearManager(context.Background(), "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)
}
