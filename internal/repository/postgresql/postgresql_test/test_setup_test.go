package postgresql_test

import (
	"testing"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

// newMockDB wires a pgxmock pool behind database.DB and verifies expectations on cleanup.
func newMockDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return &database.DB{Pool: mock}, mock
}
