package main

import (
	"fmt"
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/config"
	appHTTP "github.com/peoplehq/hrms-backend-go/internal/handler/http"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
	dashboardService "github.com/peoplehq/hrms-backend-go/internal/service/dashboard"
	departmentService "github.com/peoplehq/hrms-backend-go/internal/service/department"
	employeeService "github.com/peoplehq/hrms-backend-go/internal/service/employee"
	payrollService "github.com/peoplehq/hrms-backend-go/internal/service/payroll"
	salaryService "github.com/peoplehq/hrms-backend-go/internal/service/salary"
	titleService "github.com/peoplehq/hrms-backend-go/internal/service/title"
	userService "github.com/peoplehq/hrms-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	titleRepo := postgresql.NewTitleRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	keySetCache := authn.NewKeySetCache(
		cfg.IdP.JWKSURL,
		cfg.IdP.JWKSCacheTTL,
		cfg.IdP.FetchTimeout,
		http.DefaultClient,
	)
	verifier := authn.NewVerifier(keySetCache, cfg.IdP.IssuerURL, cfg.IdP.Audience)

	userSvc := userService.NewUserService(db, userRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, salaryRepo, titleRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	salarySvc := salaryService.NewSalaryService(db, salaryRepo, employeeRepo)
	titleSvc := titleService.NewTitleService(titleRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, salaryRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo)

	userHandler := appHTTP.NewUserHandler(userSvc, cfg.IdP.WebhookSecret)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	departmentHandler := appHTTP.NewDepartmentHandler(departmentSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	titleHandler := appHTTP.NewTitleHandler(titleSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		verifier,
		userSvc,
		userHandler,
		employeeHandler,
		departmentHandler,
		salaryHandler,
		titleHandler,
		payrollHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
