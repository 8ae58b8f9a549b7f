package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
)

func NewRouter(
	verifier *authn.Verifier,
	userService user.UserService,
	userHandler UserHandler,
	employeeHandler EmployeeHandler,
	departmentHandler DepartmentHandler,
	salaryHandler SalaryHandler,
	titleHandler TitleHandler,
	payrollHandler PayrollHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Open: the identity provider calls this without a user token.
		r.Post("/sync-user", userHandler.SyncUser)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(verifier, userService))

			// Any authenticated employee
			r.Get("/me", employeeHandler.GetMyProfile)
			r.Get("/employees", employeeHandler.SearchDirectory)
			r.Get("/my/paystubs", payrollHandler.ListMyStubs)

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", departmentHandler.List)
				r.Get("/{id}", departmentHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleAdmin))
					r.Post("/", departmentHandler.Create)
					r.Patch("/{id}", departmentHandler.Update)
					r.Delete("/{id}", departmentHandler.Delete)
				})
			})

			r.Route("/titles", func(r chi.Router) {
				r.Get("/", titleHandler.List)
				r.Get("/{id}", titleHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(user.RoleAdmin))
					r.Post("/", titleHandler.Create)
					r.Patch("/{id}", titleHandler.Update)
					r.Delete("/{id}", titleHandler.Delete)
				})
			})

			// HR manager and admin
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleHRManager, user.RoleAdmin))

				r.Route("/manage/employee/{subjectID}", func(r chi.Router) {
					r.Get("/", employeeHandler.GetProfile)
					r.Put("/", employeeHandler.UpdateProfile)
				})
				r.Get("/hr/onboarding/pending", employeeHandler.ListPendingOnboarding)
				r.Get("/hr/stats", dashboardHandler.GetHRStats)

				r.Route("/salaries", func(r chi.Router) {
					r.Get("/", salaryHandler.List)
					r.Post("/", salaryHandler.Create)
					r.Get("/{id}", salaryHandler.Get)
					r.Patch("/{id}", salaryHandler.Update)
					r.Delete("/{id}", salaryHandler.Delete)
				})

				r.Route("/payroll", func(r chi.Router) {
					r.Route("/runs", func(r chi.Router) {
						r.Get("/", payrollHandler.ListRuns)
						r.Post("/", payrollHandler.CreateRun)
						r.Get("/{id}", payrollHandler.GetRun)
						r.Delete("/{id}", payrollHandler.DeleteRun)
						r.Post("/{id}/process", payrollHandler.ProcessRun)
					})
					r.Get("/stubs-admin", payrollHandler.ListStubs)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(user.RoleAdmin))

				r.Get("/admin/stats", dashboardHandler.GetAdminStats)

				r.Route("/admin/users", func(r chi.Router) {
					r.Get("/", userHandler.ListUsers)
					r.Get("/{subjectID}", userHandler.GetUser)
					r.Patch("/{subjectID}", userHandler.UpdateUser)
					r.Delete("/{subjectID}", userHandler.DeactivateUser)
				})
			})
		})
	})

	return r
}
