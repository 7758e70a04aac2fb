// Package memory holds map-backed repositories that honour the same uniqueness
// rules as the PostgreSQL schema. Service tests run against it.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/metrics"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/report"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/task"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/team"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/google/uuid"
)

type membershipKey struct {
	managerID  string
	employeeID string
}

type metricKey struct {
	employeeID string
	date       string
}

// Store is shared by every repository it hands out. One mutex guards all tables.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	accounts    map[string]account.Account
	memberships map[membershipKey]team.Membership
	sessions    map[string]attendance.Session
	breaks      map[string]breaks.Break
	tasks       map[string]task.Task
	taskLogs    map[string]task.Log
	daily       map[metricKey]metrics.PerformanceMetric
	weekly      map[metricKey]metrics.WeeklyReport
	reports     map[string]report.Report
	events      []audit.Event

	// Now stamps created_at/updated_at columns.
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]account.Account),
		memberships: make(map[membershipKey]team.Membership),
		sessions:    make(map[string]attendance.Session),
		breaks:      make(map[string]breaks.Break),
		tasks:       make(map[string]task.Task),
		taskLogs:    make(map[string]task.Log),
		daily:       make(map[metricKey]metrics.PerformanceMetric),
		weekly:      make(map[metricKey]metrics.WeeklyReport),
		reports:     make(map[string]report.Report),
		Now:         time.Now,
	}
}

func newID() string {
	return uuid.NewString()
}

func (s *Store) Accounts() account.AccountRepository         { return &accountRepository{s} }
func (s *Store) Attendance() attendance.AttendanceRepository { return &attendanceRepository{s} }
func (s *Store) Breaks() breaks.BreakRepository              { return &breakRepository{s} }
func (s *Store) Tasks() task.TaskRepository                  { return &taskRepository{s} }
func (s *Store) TaskLogs() task.TaskLogRepository            { return &taskLogRepository{s} }
func (s *Store) Teams() team.TeamRepository                  { return &teamRepository{s} }
func (s *Store) Metrics() metrics.MetricsRepository          { return &metricsRepository{s} }
func (s *Store) Reports() report.ReportRepository            { return &reportRepository{s} }
func (s *Store) Audit() audit.AuditRepository                { return &auditRepository{s} }

// Transactor serialises transactions and restores every table when fn fails.
// Writes made outside a transaction while one is rolling back are lost too.
func (s *Store) Transactor() database.Transactor { return &transactor{s: s} }

type txKey struct{}

type transactor struct {
	s *Store
}

type snapshot struct {
	accounts    map[string]account.Account
	memberships map[membershipKey]team.Membership
	sessions    map[string]attendance.Session
	breaks      map[string]breaks.Break
	tasks       map[string]task.Task
	taskLogs    map[string]task.Log
	daily       map[metricKey]metrics.PerformanceMetric
	weekly      map[metricKey]metrics.WeeklyReport
	reports     map[string]report.Report
	events      []audit.Event
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		accounts:    maps.Clone(s.accounts),
		memberships: maps.Clone(s.memberships),
		sessions:    maps.Clone(s.sessions),
		breaks:      maps.Clone(s.breaks),
		tasks:       maps.Clone(s.tasks),
		taskLogs:    maps.Clone(s.taskLogs),
		daily:       maps.Clone(s.daily),
		weekly:      maps.Clone(s.weekly),
		reports:     maps.Clone(s.reports),
		events:      slices.Clone(s.events),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap.accounts
	s.memberships = snap.memberships
	s.sessions = snap.sessions
	s.breaks = snap.breaks
	s.tasks = snap.tasks
	s.taskLogs = snap.taskLogs
	s.daily = snap.daily
	s.weekly = snap.weekly
	s.reports = snap.reports
	s.events = snap.events
}

// WithinTransaction joins the caller's transaction when ctx already carries one.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
