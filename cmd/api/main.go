package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/chronohr/attendance-backend-go/internal/config"
	appHTTP "github.com/chronohr/attendance-backend-go/internal/handler/http"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/chronohr/attendance-backend-go/internal/pkg/uow"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	authService "github.com/chronohr/attendance-backend-go/internal/service/auth"
	requestService "github.com/chronohr/attendance-backend-go/internal/service/request"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	requestRepo := postgresql.NewRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayProvider := postgresql.NewHolidayRepository(db)

	runner := uow.Select(ctx, db, cfg.App.AtomicApproval, logger)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	requestSvc := requestService.NewRequestService(cfg.Grace, runner, requestRepo, attendanceRepo, employeeRepo, holidayProvider)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, requestRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(cfg, jwtService, authHandler, requestHandler, attendanceHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server starting", "addr", port, "env", cfg.App.Env)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
		os.Exit(1)
	}
}
