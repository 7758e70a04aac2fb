package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRepository_Upsert_UnknownEmployee(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTeamRepository(db)

	mock.ExpectQuery("INSERT INTO team_memberships").
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err := repo.Upsert(context.Background(), "mgr-1", "emp-1", time.Now())
	assert.ErrorIs(t, err, team.ErrEmployeeNotFound)
}

func TestTeamRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTeamRepository(db)

	mock.ExpectExec("DELETE FROM team_memberships").
		WithArgs("mgr-1", "emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := repo.Delete(context.Background(), "mgr-1", "emp-1")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestTeamRepository_IsMember(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTeamRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("mgr-1", "emp-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsMember(context.Background(), "mgr-1", "emp-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTeamRepository_DeleteByManagerAndEmployee(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewTeamRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM team_memberships WHERE manager_id").
		WithArgs("mgr-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec("DELETE FROM team_memberships WHERE employee_id").
		WithArgs("emp-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	removed, err := repo.DeleteByManager(ctx, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	removed, err = repo.DeleteByEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
