package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/config"
	appHTTP "github.com/cmlabs-hris/employee-management-go/internal/handler/http"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/credential"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/cron"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/database"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/postgresql"
	accountService "github.com/cmlabs-hris/employee-management-go/internal/service/account"
	attendanceService "github.com/cmlabs-hris/employee-management-go/internal/service/attendance"
	auditService "github.com/cmlabs-hris/employee-management-go/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/employee-management-go/internal/service/auth"
	breakService "github.com/cmlabs-hris/employee-management-go/internal/service/breaks"
	metricsService "github.com/cmlabs-hris/employee-management-go/internal/service/metrics"
	reportService "github.com/cmlabs-hris/employee-management-go/internal/service/report"
	taskService "github.com/cmlabs-hris/employee-management-go/internal/service/task"
	teamService "github.com/cmlabs-hris/employee-management-go/internal/service/team"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var revocations jwt.RevocationStore
	if cfg.Redis.Addr != "" {
		client, err := database.NewRedisClient(ctx, database.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		revocations = jwt.NewRedisRevocationStore(client)
	} else {
		slog.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	tx := postgresql.NewTransactor(db)
	accountRepo := postgresql.NewAccountRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	taskLogRepo := postgresql.NewTaskLogRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	metricsRepo := postgresql.NewMetricsRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, revocations)
	hasher := credential.NewHasher(bcrypt.DefaultCost)

	accountSvc := accountService.NewAccountService(tx, accountRepo, teamRepo, hasher)
	authSvc := serviceAuth.NewAuthService(accountRepo, JWTService, hasher)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, breakRepo, loc)
	breakSvc := breakService.NewBreakService(tx, breakRepo, attendanceRepo)
	taskSvc := taskService.NewTaskService(tx, taskRepo, taskLogRepo, accountRepo, teamRepo)
	teamSvc := teamService.NewTeamService(tx, teamRepo, accountRepo, reportRepo)
	metricsSvc := metricsService.NewMetricsService(metricsRepo, accountRepo, loc, cfg.Cron.Workers)
	reportSvc := reportService.NewReportService(reportRepo)
	exportSvc := reportService.NewExportService(reportRepo, metricsRepo)
	auditSvc := auditService.NewAuditService(auditRepo)

	if cfg.Bootstrap.AdminEmail != "" {
		created, err := accountSvc.EnsureBootstrapAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			slog.Info("bootstrap super admin created", "email", cfg.Bootstrap.AdminEmail)
		}
	}

	scheduler := cron.NewScheduler(loc)
	metricsJobs := cron.NewMetricsJobs(metricsSvc, loc)
	if err := metricsJobs.RegisterJobs(scheduler, cfg.Cron.DailySpec, cfg.Cron.WeeklySpec); err != nil {
		return fmt.Errorf("register metrics jobs: %w", err)
	}
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance.MaxSession)
	if err := attendanceJobs.RegisterJobs(scheduler, cfg.Cron.StaleSpec); err != nil {
		return fmt.Errorf("register attendance jobs: %w", err)
	}

	auditWriter := auditService.NewWriter(auditRepo, cfg.Audit.QueueSize)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.App.CORSOrigins,
			LogLevel:       cfg.LogLevel(),
		},
		JWTService,
		auditWriter,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			Account:    appHTTP.NewAccountHandler(accountSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Break:      appHTTP.NewBreakHandler(breakSvc),
			Task:       appHTTP.NewTaskHandler(taskSvc),
			Team:       appHTTP.NewTeamHandler(teamSvc),
			Metrics:    appHTTP.NewMetricsHandler(metricsSvc),
			Report:     appHTTP.NewReportHandler(reportSvc, exportSvc),
			Audit:      appHTTP.NewAuditHandler(auditSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler.Start()
	defer scheduler.Stop()

	g, gctx := errgroup.WithContext(ctx)
	if cfg.Cron.RunOnStart {
		g.Go(func() error {
			if err := metricsJobs.Today(gctx); err != nil {
				slog.Error("run-on-start metrics failed", "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("shutting down")
		err := server.Shutdown(shutdownCtx)
		if cerr := auditWriter.Close(shutdownCtx); cerr != nil {
			slog.Warn("audit queue not drained", "error", cerr)
		}
		return err
	})

	return g.Wait()
}
