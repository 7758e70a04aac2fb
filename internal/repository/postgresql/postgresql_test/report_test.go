package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_List_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewReportRepository(db)

	typ := report.TypeIncident
	employeeID := "emp-1"

	mock.ExpectQuery("AND r.type = \\$1 AND r.employee_id = \\$2 ORDER BY").
		WithArgs(typ, employeeID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "type", "report_date", "content", "created_at", "code", "name",
		}))

	reports, err := repo.List(context.Background(), report.ListFilter{ParsedType: &typ, EmployeeID: &employeeID})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestReportRepository_Create_CheckViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewReportRepository(db)

	mock.ExpectQuery("INSERT INTO reports").
		WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "reports_type_check"})

	_, err := repo.Create(context.Background(), report.Report{EmployeeID: "emp-1", Type: report.Type("memo"), Content: "x"})
	assert.ErrorIs(t, err, report.ErrInvalidReport)
}

func TestReportRepository_ListByManager_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewReportRepository(db)

	mock.ExpectQuery("WHERE a.manager_id = \\$1").
		WillReturnError(errors.New("boom"))

	_, err := repo.ListByManager(context.Background(), "mgr-1")
	assert.ErrorContains(t, err, "failed to list reports")
}

func TestAuditRepository_Log(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgresql.NewAuditRepository(db)

	entity := "account"
	mock.ExpectExec("INSERT INTO activity_logs").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Log(context.Background(), audit.Event{
		ActorID:   "admin-1",
		ActorRole: "ADMIN",
		Action:    "account.create",
		Entity:    &entity,
	})
	assert.NoError(t, err)
}
