package http

import (
	"log/slog"
	"net/http"

	"github.com/damdam-laundry/hris-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Payroll    PayrollHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.Post("/", h.Employee.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.Get)
				r.Put("/", h.Employee.Update)
				r.Delete("/", h.Employee.Deactivate)

				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/attendances", h.Attendance.History)
				r.Get("/attendances/stats", h.Attendance.MonthlyStats)

				r.Post("/leave-requests", h.Leave.CreateRequest)
				r.Get("/leave-requests", h.Leave.ListEmployeeRequests)
			})
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Get("/pending", h.Leave.ListPendingRequests)
			r.Get("/{id}", h.Leave.GetRequest)
			r.Post("/{id}/decision", h.Leave.DecideRequest)
		})

		r.Route("/outlet", func(r chi.Router) {
			r.Get("/", h.Attendance.GetOutletConfig)
			r.Put("/", h.Attendance.UpdateOutletConfig)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.Payroll.ListReports)
			r.Get("/export", h.Payroll.ExportPayouts)

			r.Route("/{employeeId}", func(r chi.Router) {
				r.Get("/", h.Payroll.GetReport)
				r.Get("/adjustment", h.Payroll.GetAdjustment)
				r.Put("/adjustment", h.Payroll.SetAdjustment)
				r.Post("/cash-advance", h.Payroll.AdjustCashAdvance)
				r.Get("/cash-advance", h.Payroll.ListCashAdvanceEntries)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
