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

	"github.com/cmlabs-hris/shift-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/shift-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/shift-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/shift-attendance-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/shift-attendance-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/shift-attendance-go/internal/service/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/service/roster"
	rotationService "github.com/cmlabs-hris/shift-attendance-go/internal/service/rotation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	clk := clock.New(cfg.App.Location)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	clockRepo := postgresql.NewClockRecordRepository(db)
	latenessRepo := postgresql.NewLatenessRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	rotationRepo := postgresql.NewRotationRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	rotationSvc := rotationService.NewRotationService(db, rotationRepo, employeeRepo, clk)
	rosterSvc := roster.NewRosterService(employeeRepo, rotationSvc, leaveRequestRepo, clockRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, leaveQuotaRepo, employeeRepo, cfg.Leave.DefaultAllocation, clk)
	quotaSvc := leaveService.NewQuotaService(leaveQuotaRepo, cfg.Leave.DefaultAllocation, clk)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, quotaSvc)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		employeeRepo,
		clockRepo,
		latenessRepo,
		absenceRepo,
		leaveRequestRepo,
		rosterSvc,
		clk,
	)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc, rosterSvc, clk),
		appHTTP.NewRotationHandler(rotationSvc, clk),
		appHTTP.NewLeaveHandler(leaveSvc, clk),
	)

	scheduler := cron.NewScheduler()
	if cfg.Absence.SweepInterval > 0 {
		cron.NewAbsenceSweepJobs(attendanceSvc, clk, cfg.Absence.SweepInterval).RegisterJobs(scheduler)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
