package http

import (
	"net/http"

	"docpool/internal/delivery/http/handler"
	"docpool/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	doctorHandler         *handler.DoctorHandler
	activityLogHandler    *handler.ActivityLogHandler
	healthHandler         *handler.HealthHandler
	corsMiddleware        *middleware.CORSMiddleware
	requestIDMiddleware   *middleware.RequestIDMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
	idempotencyMiddleware *middleware.IdempotencyMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	activityLogHandler *handler.ActivityLogHandler,
	healthHandler *handler.HealthHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	idempotencyMiddleware *middleware.IdempotencyMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		doctorHandler:         doctorHandler,
		activityLogHandler:    activityLogHandler,
		healthHandler:         healthHandler,
		corsMiddleware:        corsMiddleware,
		requestIDMiddleware:   requestIDMiddleware,
		loggingMiddleware:     loggingMiddleware,
		idempotencyMiddleware: idempotencyMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Doctors
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/export", r.doctorHandler.ExportDoctors).Methods(http.MethodGet)
	api.Handle("/doctors", r.idempotencyMiddleware.Handle(http.HandlerFunc(r.doctorHandler.CreateDoctor))).Methods(http.MethodPost)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Dashboard
	api.HandleFunc("/stats", r.doctorHandler.GetStats).Methods(http.MethodGet)
	api.HandleFunc("/activity-logs/{doctorId}", r.activityLogHandler.GetActivityLogs).Methods(http.MethodGet)

	// Preflight requests match no method-bound route, so give them one
	// and let the CORS middleware answer.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
