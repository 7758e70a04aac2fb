package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

const accountColumns = `id, role, code, email, firstname, lastname, telephone, address,
		credential_hash, password_set, status, department, manager_id, created_by, created_at, updated_at`

type accountRepositoryImpl struct {
	db *database.DB
}

func NewAccountRepository(db *database.DB) account.AccountRepository {
	return &accountRepositoryImpl{db: db}
}

func scanAccount(row rowScanner) (account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID, &a.Role, &a.Code, &a.Email, &a.Firstname, &a.Lastname, &a.Telephone, &a.Address,
		&a.CredentialHash, &a.PasswordSet, &a.Status, &a.Department, &a.ManagerID, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account.Account{}, account.ErrAccountNotFound
		}
		return account.Account{}, err
	}
	return a, nil
}

func translateAccountWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err, "accounts_code_key"):
		return account.ErrCodeExists
	case isUniqueViolation(err, "accounts_email_key"):
		return account.ErrEmailExists
	case isForeignKeyViolation(err):
		return account.ErrManagerNotFound
	}
	return translateError(op, err)
}

// Create implements account.AccountRepository.
func (r *accountRepositoryImpl) Create(ctx context.Context, newAccount account.Account) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO accounts (
			role, code, email, firstname, lastname, telephone, address,
			credential_hash, password_set, status, department, manager_id, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAccount.Role,
		newAccount.Code,
		newAccount.Email,
		newAccount.Firstname,
		newAccount.Lastname,
		newAccount.Telephone,
		newAccount.Address,
		newAccount.CredentialHash,
		newAccount.PasswordSet,
		newAccount.Status,
		newAccount.Department,
		newAccount.ManagerID,
		newAccount.CreatedBy,
	).Scan(&newAccount.ID, &newAccount.CreatedAt, &newAccount.UpdatedAt)
	if err != nil {
		return account.Account{}, translateAccountWriteError("failed to create account", err)
	}

	return newAccount, nil
}

// GetByID implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByID(ctx context.Context, id string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	a, err := scanAccount(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, err
		}
		return account.Account{}, translateError("failed to get account by id", err)
	}
	return a, nil
}

// GetByCode implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByCode(ctx context.Context, code string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1`

	a, err := scanAccount(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, err
		}
		return account.Account{}, translateError("failed to get account by code", err)
	}
	return a, nil
}

// GetByEmail implements account.AccountRepository.
func (r *accountRepositoryImpl) GetByEmail(ctx context.Context, email string) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE LOWER(email) = LOWER($1)`

	a, err := scanAccount(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, err
		}
		return account.Account{}, translateError("failed to get account by email", err)
	}
	return a, nil
}

// List implements account.AccountRepository.
func (r *accountRepositoryImpl) List(ctx context.Context, filter account.ListFilter) ([]account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Department != nil {
		query += fmt.Sprintf(" AND department = $%d", argIdx)
		args = append(args, *filter.Department)
	}
	query += " ORDER BY created_at DESC"

	return r.queryAccounts(ctx, q, "failed to list accounts", query, args...)
}

// ListByManagerID implements account.AccountRepository.
func (r *accountRepositoryImpl) ListByManagerID(ctx context.Context, managerID string) ([]account.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE manager_id = $1 ORDER BY firstname`

	return r.queryAccounts(ctx, q, "failed to list direct reports", query, managerID)
}

func (r *accountRepositoryImpl) queryAccounts(ctx context.Context, q database.Querier, op string, query string, args ...interface{}) ([]account.Account, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(op, err)
	}
	defer rows.Close()

	accounts := make([]account.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return accounts, nil
}

// ListActiveStaffIDs implements account.AccountRepository.
func (r *accountRepositoryImpl) ListActiveStaffIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id FROM accounts
		WHERE status = $1 AND role IN ($2, $3)
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, account.StatusActive, account.RoleEmployee, account.RoleManager)
	if err != nil {
		return nil, translateError("failed to list active staff", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

// Update implements account.AccountRepository.
func (r *accountRepositoryImpl) Update(ctx context.Context, code string, req account.UpdateAccountRequest) (account.Account, error) {
	q := GetQuerier(ctx, r.db)

	// Build dynamic update query
	query := `UPDATE accounts SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value interface{}) {
		query += fmt.Sprintf(", %s = $%d", column, argIdx)
		args = append(args, value)
		argIdx++
	}

	if req.Firstname != nil {
		set("firstname", *req.Firstname)
	}
	if req.Lastname != nil {
		set("lastname", *req.Lastname)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Telephone != nil {
		set("telephone", *req.Telephone)
	}
	if req.Address != nil {
		set("address", *req.Address)
	}
	if req.Department != nil {
		set("department", *req.Department)
	}

	query += fmt.Sprintf(" WHERE code = $%d RETURNING %s", argIdx, accountColumns)
	args = append(args, code)

	a, err := scanAccount(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return account.Account{}, err
		}
		return account.Account{}, translateAccountWriteError("failed to update account", err)
	}
	return a, nil
}

// UpdateStatus implements account.AccountRepository.
func (r *accountRepositoryImpl) UpdateStatus(ctx context.Context, code string, status account.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE accounts SET status = $1, updated_at = NOW() WHERE code = $2`

	commandTag, err := q.Exec(ctx, query, status, code)
	if err != nil {
		return translateError("failed to update account status", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// UpdateRole implements account.AccountRepository. Promotion to MANAGER clears manager_id.
func (r *accountRepositoryImpl) UpdateRole(ctx context.Context, code string, role account.Role) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE accounts
		SET role = $1,
			manager_id = CASE WHEN $1 = 'MANAGER' THEN NULL ELSE manager_id END,
			updated_at = NOW()
		WHERE code = $2
	`

	commandTag, err := q.Exec(ctx, query, role, code)
	if err != nil {
		return translateError("failed to update account role", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// ClearManager implements account.AccountRepository.
func (r *accountRepositoryImpl) ClearManager(ctx context.Context, managerID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE accounts SET manager_id = NULL, updated_at = NOW() WHERE manager_id = $1`

	commandTag, err := q.Exec(ctx, query, managerID)
	if err != nil {
		return 0, translateError("failed to clear direct reports", err)
	}
	return commandTag.RowsAffected(), nil
}

// UpdateCredential implements account.AccountRepository.
func (r *accountRepositoryImpl) UpdateCredential(ctx context.Context, id string, credentialHash string, passwordSet bool) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE accounts SET credential_hash = $1, password_set = $2, updated_at = NOW() WHERE id = $3`

	commandTag, err := q.Exec(ctx, query, credentialHash, passwordSet, id)
	if err != nil {
		return translateError("failed to update credential", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// AssignManager implements account.AccountRepository.
func (r *accountRepositoryImpl) AssignManager(ctx context.Context, employeeID string, managerID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE accounts SET manager_id = $1, updated_at = NOW() WHERE id = $2 AND role = $3`

	commandTag, err := q.Exec(ctx, query, managerID, employeeID, account.RoleEmployee)
	if err != nil {
		return translateAccountWriteError("failed to assign manager", err)
	}

	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}

	return nil
}

// CountByRole implements account.AccountRepository.
func (r *accountRepositoryImpl) CountByRole(ctx context.Context, role account.Role) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1`, role).Scan(&count); err != nil {
		return 0, translateError("failed to count accounts", err)
	}
	return count, nil
}
