package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
)

const reportSelect = `
	SELECT r.id, r.employee_id, r.type, r.report_date, r.content, r.created_at,
		a.code, TRIM(a.firstname || ' ' || a.lastname)
	FROM reports r
	JOIN accounts a ON a.id = r.employee_id`

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// Create implements report.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, newReport report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reports (employee_id, type, report_date, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, type, report_date, content, created_at
	`

	var created report.Report
	err := q.QueryRow(ctx, query, newReport.EmployeeID, newReport.Type, newReport.ReportDate, newReport.Content).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.Type,
		&created.ReportDate,
		&created.Content,
		&created.CreatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return report.Report{}, report.ErrInvalidReport
		}
		return report.Report{}, translateError("failed to create report", err)
	}
	return created, nil
}

// ListByEmployee implements report.ReportRepository.
func (r *reportRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]report.Report, error) {
	query := reportSelect + ` WHERE r.employee_id = $1 ORDER BY r.report_date DESC, r.created_at DESC`
	return r.queryReports(ctx, query, employeeID)
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, filter report.ListFilter) ([]report.Report, error) {
	query := reportSelect + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.ParsedType != nil {
		query += fmt.Sprintf(" AND r.type = $%d", argIdx)
		args = append(args, *filter.ParsedType)
		argIdx++
	}
	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND r.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND r.report_date >= $%d", argIdx)
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND r.report_date <= $%d", argIdx)
		args = append(args, *filter.ToDate)
	}

	query += " ORDER BY r.report_date DESC, r.created_at DESC"

	return r.queryReports(ctx, query, args...)
}

// ListByManager implements report.ReportRepository.
func (r *reportRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]report.Report, error) {
	query := reportSelect + ` WHERE a.manager_id = $1 ORDER BY r.report_date DESC, r.created_at DESC`
	return r.queryReports(ctx, query, managerID)
}

func (r *reportRepositoryImpl) queryReports(ctx context.Context, query string, args ...interface{}) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list reports", err)
	}
	defer rows.Close()

	reports := make([]report.Report, 0)
	for rows.Next() {
		var rp report.Report
		err := rows.Scan(
			&rp.ID,
			&rp.EmployeeID,
			&rp.Type,
			&rp.ReportDate,
			&rp.Content,
			&rp.CreatedAt,
			&rp.EmployeeCode,
			&rp.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rp)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reports, nil
}
