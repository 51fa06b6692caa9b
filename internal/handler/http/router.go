package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/shift-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

// NewLogger returns the ECS-shaped JSON logger shared by request logging and services.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shift-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	rotationHandler RotationHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = NewLogger("development", opts.LogLevel)
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
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
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/employees", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", employeeHandler.ListEmployees)
			r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/services", employeeHandler.ListServices)
			r.With(middleware.RequirePermission(user.PermissionEmployeeManage)).Post("/", employeeHandler.CreateEmployee)

			r.Route("/{id}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", employeeHandler.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Put("/", employeeHandler.UpdateEmployee)
					r.Post("/deactivate", employeeHandler.DeactivateEmployee)
					r.Delete("/", employeeHandler.DeleteEmployee)
				})
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceClock))
				r.Post("/arrivals", attendanceHandler.RegisterArrival)
				r.Post("/departures", attendanceHandler.RegisterDeparture)
			})

			r.With(middleware.RequirePermission(user.PermissionAttendanceCorrect)).Put("/records/{id}", attendanceHandler.CorrectRecord)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
				r.Get("/records", attendanceHandler.SearchRecords)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/roster", attendanceHandler.Roster)
				r.Get("/pending", attendanceHandler.Pending)
				r.Get("/daytime-night-staff", attendanceHandler.DaytimeNightStaff)
				r.Get("/lateness", attendanceHandler.ListLateness)
			})
		})

		r.Route("/absences", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
				r.Get("/", attendanceHandler.ListAbsences)
				r.Get("/{id}/certificate", attendanceHandler.DownloadCertificate)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCorrect))
				r.Post("/", attendanceHandler.RecordAbsence)
				r.Post("/sweep", attendanceHandler.SweepAbsences)
				r.Post("/{id}/justification", attendanceHandler.JustifyAbsence)
			})
		})

		r.Route("/rotation", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionRotationView))
				r.Get("/history", rotationHandler.History)
				r.Get("/night-staff", rotationHandler.NightStaff)
				r.Get("/{service}", rotationHandler.GetActiveGroup)
			})

			r.With(middleware.RequirePermission(user.PermissionRotationManage)).Put("/{service}", rotationHandler.SetActiveGroup)
		})

		r.Route("/leave", func(r chi.Router) {
			r.Route("/requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveRequest)).Post("/", leaveHandler.CreateRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveView))
					r.Get("/", leaveHandler.ListRequests)
					r.Get("/current", leaveHandler.ListCurrent)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/{id}/reject", leaveHandler.RejectRequest)
				})
			})

			r.Route("/quotas/{employeeID}", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveView)).Get("/", leaveHandler.GetQuota)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/", leaveHandler.SetAllocation)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
	})

	return r
}
