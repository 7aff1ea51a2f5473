package http

import (
	"net/http"

	"doctor-schedule-service/internal/delivery/http/handler"
	"doctor-schedule-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	doctorScheduleHandler *handler.DoctorScheduleHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
	loggerMiddleware      *middleware.LoggerMiddleware
}

// NewRouter wires the schedule routes. A nil authMiddleware leaves every route public.
func NewRouter(
	doctorScheduleHandler *handler.DoctorScheduleHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		doctorScheduleHandler: doctorScheduleHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
		loggerMiddleware:      loggerMiddleware,
	}
}

// Setup registers the routes and wraps the whole router in the logger and CORS
// middleware, so preflights and unmatched requests pass through them too.
func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	schedule := api.PathPrefix("/doctors/schedule").Subrouter()

	// Schedule reads (public)
	schedule.HandleFunc("/getDoctorScheduleByID/{slotId}", r.doctorScheduleHandler.GetSchedule).Methods(http.MethodGet)
	schedule.HandleFunc("/getAllDoctors", r.doctorScheduleHandler.GetAllSchedules).Methods(http.MethodGet)
	schedule.HandleFunc("/getDoctorScheduleByDoctorID/{doctorId}", r.doctorScheduleHandler.GetSchedulesByDoctor).Methods(http.MethodGet)
	schedule.HandleFunc("/todayandupcoming/{doctorId}", r.doctorScheduleHandler.GetTodayAndUpcomingSchedules).Methods(http.MethodGet)
	schedule.HandleFunc("/upcoming/{doctorId}", r.doctorScheduleHandler.GetUpcomingSchedules).Methods(http.MethodGet)

	// Schedule writes (admin or doctor when auth is enabled)
	schedule.Handle("/saveSchedule", r.protect(r.doctorScheduleHandler.SaveSchedule)).Methods(http.MethodPost)
	schedule.Handle("/updateDoctorSchedule/{slotId}", r.protect(r.doctorScheduleHandler.UpdateSchedule)).Methods(http.MethodPut)
	schedule.Handle("/deleteDoctorSchedule/{slotId}", r.protect(r.doctorScheduleHandler.DeleteSchedule)).Methods(http.MethodDelete)

	return r.loggerMiddleware.Handle(r.corsMiddleware.Handle(r.router))
}

// protect wraps a write handler with authentication and the role check.
func (r *Router) protect(h http.HandlerFunc) http.Handler {
	if r.authMiddleware == nil {
		return h
	}
	return r.authMiddleware.Authenticate(middleware.RequireAdminOrDoctor(h))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
