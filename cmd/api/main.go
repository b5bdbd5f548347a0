package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/config"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/leave"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	appHTTP "github.com/damdam-laundry/hris-backend-go/internal/handler/http"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/cron"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
	"github.com/damdam-laundry/hris-backend-go/internal/repository/memory"
	"github.com/damdam-laundry/hris-backend-go/internal/repository/postgresql"
	attendanceService "github.com/damdam-laundry/hris-backend-go/internal/service/attendance"
	employeeService "github.com/damdam-laundry/hris-backend-go/internal/service/employee"
	leaveService "github.com/damdam-laundry/hris-backend-go/internal/service/leave"
	payrollService "github.com/damdam-laundry/hris-backend-go/internal/service/payroll"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	tx         database.Transactor
	employee   employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	outlet     attendance.OutletConfigRepository
	leave      leave.LeaveRequestRepository
	payroll    payroll.PayrollRepository
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "damdam-laundry-hris"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := newRepositories(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialise storage", "store", cfg.App.Store, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	calculator := payrollService.NewCalculator(payrollService.CalculatorOptions{
		FreeLeaveQuota:  cfg.Payroll.FreeLeaveQuota,
		ImplicitAbsence: cfg.Payroll.ImplicitAbsence,
	})

	employeeSvc := employeeService.NewEmployeeService(repos.employee)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.attendance,
		repos.outlet,
		repos.employee,
		cfg.Payroll.FreeLeaveQuota,
		cfg.Outlet.Location,
	)
	leaveSvc := leaveService.NewLeaveService(repos.tx, repos.leave, repos.attendance, repos.employee)
	payrollSvc := payrollService.NewPayrollService(repos.tx, repos.payroll, repos.employee, repos.attendance, calculator)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger,
		},
		appHTTP.Handlers{
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		},
	)

	var scheduler *cron.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cron.NewScheduler(logger)
		cron.NewAttendanceJobs(repos.attendance, repos.outlet, repos.employee, cfg.Outlet.Location, cfg.Cron.MarkAbsent).
			RegisterJobs(scheduler)
		scheduler.Start()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", server.Addr, "store", cfg.App.Store)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop()
	}
}

func newRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.App.Store == config.StoreMemory {
		return &repositories{
			tx:         memory.NewTransactor(),
			employee:   memory.NewEmployeeRepository(),
			attendance: memory.NewAttendanceRepository(),
			outlet:     memory.NewOutletConfigRepository(),
			leave:      memory.NewLeaveRequestRepository(),
			payroll:    memory.NewPayrollRepository(),
			close:      func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, err
	}

	return &repositories{
		tx:         postgresql.NewTransactor(db),
		employee:   postgresql.NewEmployeeRepository(db),
		attendance: postgresql.NewAttendanceRepository(db),
		outlet:     postgresql.NewOutletConfigRepository(db),
		leave:      postgresql.NewLeaveRequestRepository(db),
		payroll:    postgresql.NewPayrollRepository(db),
		close:      db.Close,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
