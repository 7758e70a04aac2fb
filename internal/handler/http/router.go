package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	LogLevel       slog.Level
}

type Handlers struct {
	Auth       AuthHandler
	Account    AccountHandler
	Attendance AttendanceHandler
	Break      BreakHandler
	Task       TaskHandler
	Team       TeamHandler
	Metrics    MetricsHandler
	Report     ReportHandler
	Audit      AuditHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, auditSink audit.Sink, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "employee-management"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin/login", h.Auth.LoginAdmin)
			r.Post("/employee/login", h.Auth.LoginEmployee)
			r.Post("/manager/login", h.Auth.LoginManager)
			r.Post("/setup-password", h.Auth.SetupPassword)
			r.Post("/refresh", h.Auth.RefreshToken)

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService))
				r.Post("/logout", h.Auth.Logout)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))
			r.Use(middleware.Audit(auditSink))

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequirePermission(account.PermissionAccountManage))
				r.Route("/accounts", func(r chi.Router) {
					r.Post("/", h.Account.Create)
					r.Get("/", h.Account.List)
					r.Get("/{code}", h.Account.Get)
					r.Patch("/{code}", h.Account.Update)
					r.Patch("/{code}/status", h.Account.SetStatus)
					r.Patch("/{code}/role", h.Account.ChangeRole)
				})
				r.Post("/assign-manager", h.Account.AssignManager)

				r.With(middleware.RequireRole(account.RoleSuperAdmin)).Post("/admins", h.Account.CreateAdmin)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Use(middleware.RequirePermission(account.PermissionAttendanceSelf))
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/history", h.Attendance.History)
			})

			r.Route("/breaks", func(r chi.Router) {
				r.Use(middleware.RequirePermission(account.PermissionBreakSelf))
				r.Post("/start", h.Break.Start)
				r.Post("/end", h.Break.End)
				r.Get("/history", h.Break.History)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.With(middleware.RequirePermission(account.PermissionTaskAssign)).Post("/", h.Task.Assign)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(account.PermissionTaskWork))
					r.Get("/me", h.Task.ListMine)
					r.Post("/{taskID}/start", h.Task.Start)
					r.Post("/{taskID}/complete", h.Task.Complete)
					r.Get("/{taskID}/logs", h.Task.Logs)
				})
			})

			r.Route("/manager", func(r chi.Router) {
				r.Use(middleware.RequirePermission(account.PermissionTeamManage))
				r.Get("/team", h.Team.Members)
				r.Get("/team/available", h.Team.Available)
				r.Post("/team", h.Team.AddMember)
				r.Delete("/team/{employeeID}", h.Team.RemoveMember)
				r.Get("/direct-reports", h.Team.DirectReports)
				r.Get("/reports", h.Team.Reports)

				r.Get("/tasks", h.Task.ManagerList)
				r.Post("/tasks", h.Task.ManagerCreate)
				r.Patch("/tasks/{taskID}", h.Task.ManagerUpdate)
				r.Delete("/tasks/{taskID}", h.Task.ManagerDelete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(account.PermissionReportSubmit)).Post("/", h.Report.Submit)
				r.With(middleware.RequirePermission(account.PermissionReportSubmit)).Get("/me", h.Report.ListMine)
				r.With(middleware.RequirePermission(account.PermissionReportViewAll)).Get("/", h.Report.ListAll)
			})

			r.Route("/metrics", func(r chi.Router) {
				r.With(middleware.RequirePermission(account.PermissionMetricsViewOwn)).Get("/me", h.Metrics.Mine)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(account.PermissionMetricsViewAll))
					r.Get("/admin", h.Metrics.AdminSummary)
					r.Get("/weekly", h.Metrics.WeeklyReports)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(account.PermissionMetricsRun))
					r.Post("/recalculate", h.Metrics.Recalculate)
					r.Post("/weekly/run", h.Metrics.RunWeekly)
				})
			})

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.RequirePermission(account.PermissionExport))
				r.Get("/reports/csv", h.Report.ExportReportsCSV)
				r.Get("/metrics/xlsx", h.Report.ExportMetricsXLSX)
			})

			r.With(middleware.RequirePermission(account.PermissionAuditView)).Get("/audit/logs", h.Audit.List)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"route not found"}`))
	})
	return r
}
