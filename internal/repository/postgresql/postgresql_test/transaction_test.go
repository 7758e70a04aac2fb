package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_CommitsOnSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	tx := postgresql.NewTransactor(db)
	repo := postgresql.NewTeamRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM team_memberships").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := repo.Delete(ctx, "mgr-1", "emp-1")
		return err
	})
	require.NoError(t, err)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tx := postgresql.NewTransactor(db)

	sentinel := errors.New("stop")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestTransactor_NestedCallJoinsOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	tx := postgresql.NewTransactor(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return nil
		})
	})
	require.NoError(t, err)
}
