package http

import (
	"net/http"

	"healthapp-backend/internal/delivery/http/handler"
	"healthapp-backend/internal/delivery/http/middleware"
	"healthapp-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	adminDoctorHandler *handler.AdminDoctorHandler
	adminAuditHandler  *handler.AdminAuditHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	userHandler        *handler.UserHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	adminDoctorHandler *handler.AdminDoctorHandler,
	adminAuditHandler *handler.AdminAuditHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	userHandler *handler.UserHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		adminDoctorHandler: adminDoctorHandler,
		adminAuditHandler:  adminAuditHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		userHandler:        userHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Admin routes: the activation workflow and user management. The
	// usecases verify the admin role again on every mutation.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors/pending", r.adminDoctorHandler.ListPending).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/pending/count", r.adminDoctorHandler.CountPending).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/activated", r.adminDoctorHandler.ListActivated).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/activated/count", r.adminDoctorHandler.CountActivated).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{doctorId}/activate", r.adminDoctorHandler.Activate).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{doctorId}/reject", r.adminDoctorHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{doctorId}", r.adminDoctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{userId}", r.userHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.adminAuditHandler.ListRecent).Methods(http.MethodGet)

	// Profile routes (any authenticated account)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/me", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	users.HandleFunc("/me", r.userHandler.DeleteAccount).Methods(http.MethodDelete)

	// Doctor directory (any authenticated account)
	directory := api.PathPrefix("/doctors").Subrouter()
	directory.Use(r.authMiddleware.Authenticate)
	directory.HandleFunc("/available", r.doctorHandler.ListAvailable).Methods(http.MethodGet)

	// Doctor dashboard
	doctorsMe := api.PathPrefix("/doctors/me").Subrouter()
	doctorsMe.Use(r.authMiddleware.Authenticate)
	doctorsMe.Use(middleware.RequireDoctor)
	doctorsMe.HandleFunc("/appointments", r.doctorHandler.ListMyAppointments).Methods(http.MethodGet)
	doctorsMe.HandleFunc("/appointments/upcoming", r.doctorHandler.ListMyUpcomingAppointments).Methods(http.MethodGet)
	doctorsMe.HandleFunc("/appointments/{appointmentId}/complete", r.doctorHandler.CompleteAppointment).Methods(http.MethodPost)

	// Appointment booking (patients)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireRole(entity.RoleUser, entity.RoleAdmin))
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	appointments.HandleFunc("/{appointmentId}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
