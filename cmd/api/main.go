package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/staffsync/staffsync-backend-go/internal/config"
	appHTTP "github.com/staffsync/staffsync-backend-go/internal/handler/http"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/jwt"
	"github.com/staffsync/staffsync-backend-go/internal/repository/postgresql"
	attendanceService "github.com/staffsync/staffsync-backend-go/internal/service/attendance"
	authService "github.com/staffsync/staffsync-backend-go/internal/service/auth"
	dashboardService "github.com/staffsync/staffsync-backend-go/internal/service/dashboard"
	employeeService "github.com/staffsync/staffsync-backend-go/internal/service/employee"
	leaveService "github.com/staffsync/staffsync-backend-go/internal/service/leave"
	payrollService "github.com/staffsync/staffsync-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, userRepo, employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, cfg)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, cfg)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, cfg)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		leaveHandler,
		dashboardHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
