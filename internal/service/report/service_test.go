package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportTime = time.Date(2025, 3, 14, 16, 30, 5, 0, time.UTC)

func seedEmployee(t *testing.T, store *memory.Store, code, firstname, lastname string) account.Account {
	t.Helper()
	a, err := store.Accounts().Create(context.Background(), account.Account{
		Role:      account.RoleEmployee,
		Code:      code,
		Firstname: firstname,
		Lastname:  lastname,
		Status:    account.StatusActive,
	})
	require.NoError(t, err)
	return a
}

func strPtr(s string) *string { return &s }

func TestReportService_Submit(t *testing.T) {
	store := memory.NewStore()
	svc := &ReportServiceImpl{ReportRepository: store.Reports()}
	ctx := context.Background()
	employee := seedEmployee(t, store, "EMP-000001", "Budi", "Santoso")

	got, err := svc.Submit(ctx, employee.ID, report.SubmitReportRequest{
		Type:       report.TypeDaily,
		ReportDate: "2025-03-10",
		Content:    "  closed two tickets  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", got.ReportDate)
	assert.Equal(t, "closed two tickets", got.Content)

	_, err = svc.Submit(ctx, employee.ID, report.SubmitReportRequest{Type: report.TypeDaily, ReportDate: "10/03/2025", Content: "x"})
	assert.Error(t, err)

	_, err = svc.Submit(ctx, employee.ID, report.SubmitReportRequest{Type: "monthly", ReportDate: "2025-03-10", Content: "x"})
	assert.Error(t, err)

	mine, err := svc.ListMine(ctx, employee.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "EMP-000001", mine[0].EmployeeCode)
	assert.Equal(t, "Budi Santoso", mine[0].EmployeeName)
}

func TestReportService_ListAll(t *testing.T) {
	store := memory.NewStore()
	svc := &ReportServiceImpl{ReportRepository: store.Reports()}
	ctx := context.Background()
	budi := seedEmployee(t, store, "EMP-000001", "Budi", "")
	sari := seedEmployee(t, store, "EMP-000002", "Sari", "")

	submit := func(employeeID string, typ report.Type, date string) {
		_, err := svc.Submit(ctx, employeeID, report.SubmitReportRequest{Type: typ, ReportDate: date, Content: "ok"})
		require.NoError(t, err)
	}
	submit(budi.ID, report.TypeDaily, "2025-03-10")
	submit(budi.ID, report.TypeIncident, "2025-03-11")
	submit(sari.ID, report.TypeDaily, "2025-03-12")

	all, err := svc.ListAll(ctx, report.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-12", all[0].ReportDate)

	daily, err := svc.ListAll(ctx, report.ListFilter{Type: strPtr("daily"), To: strPtr("2025-03-11")})
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, budi.ID, daily[0].EmployeeID)

	_, err = svc.ListAll(ctx, report.ListFilter{From: strPtr("2025-03-12"), To: strPtr("2025-03-10")})
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestExportService_ReportsCSV(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	employee := seedEmployee(t, store, "EMP-000001", "Budi", "Santoso")
	_, err := store.Reports().Create(ctx, report.Report{
		EmployeeID: employee.ID,
		Type:       report.TypeIncident,
		ReportDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Content:    "server room, flooded",
	})
	require.NoError(t, err)

	svc := &ExportServiceImpl{ReportRepository: store.Reports(), MetricsRepository: store.Metrics(), now: func() time.Time { return exportTime }}
	file, err := svc.ReportsCSV(ctx, report.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "reports_20250314_163005.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Employee Code", records[0][1])
	assert.Equal(t, "EMP-000001", records[1][1])
	assert.Equal(t, "Budi Santoso", records[1][2])
	assert.Equal(t, "incident", records[1][3])
	assert.Equal(t, "2025-03-10", records[1][4])
	assert.Equal(t, "server room, flooded", records[1][5])
}

func TestExportService_MetricsXLSX(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	employee := seedEmployee(t, store, "EMP-000001", "Budi", "Santoso")
	_, err := store.Metrics().UpsertDaily(ctx, metrics.PerformanceMetric{
		EmployeeID:        employee.ID,
		MetricDate:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		AttendanceHours:   7.5,
		TasksCompleted:    1,
		ProductivityScore: 90,
	})
	require.NoError(t, err)

	svc := &ExportServiceImpl{ReportRepository: store.Reports(), MetricsRepository: store.Metrics(), now: func() time.Time { return exportTime }}
	file, err := svc.MetricsXLSX(ctx, metrics.RangeFilter{})
	require.NoError(t, err)
	assert.Equal(t, "metrics_20250314_163005.xlsx", file.Name)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	daily, err := book.GetRows("Daily Metrics")
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "Productivity Score", daily[0][4])
	assert.Equal(t, "2025-03-10", daily[1][1])
	assert.Equal(t, "90", daily[1][4])

	summary, err := book.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "EMP-000001", summary[1][0])
	assert.Equal(t, "90", summary[1][3])

	_, err = svc.MetricsXLSX(ctx, metrics.RangeFilter{From: strPtr("March")})
	assert.Error(t, err)
}
