package main

import (
	"fmt"
	"net/http"

	"github.com/ems-labs/ems-backend-go/internal/config"
	appHTTP "github.com/ems-labs/ems-backend-go/internal/handler/http"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/ems-labs/ems-backend-go/internal/pkg/jwt"
	"github.com/ems-labs/ems-backend-go/internal/repository/postgresql"
	attendanceService "github.com/ems-labs/ems-backend-go/internal/service/attendance"
	authService "github.com/ems-labs/ems-backend-go/internal/service/auth"
	employeeService "github.com/ems-labs/ems-backend-go/internal/service/employee"
	leaveService "github.com/ems-labs/ems-backend-go/internal/service/leave"
	reportService "github.com/ems-labs/ems-backend-go/internal/service/report"
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

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(userRepo, employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, leaveBalanceRepo)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
