package http

import (
	"net/http"

	"github.com/Jijnash2636/medaiton/internal/delivery/http/handler"
	"github.com/Jijnash2636/medaiton/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	portalHandler       *handler.PortalHandler
	receptionHandler    *handler.ReceptionHandler
	triageHandler       *handler.TriageHandler
	consultationHandler *handler.ConsultationHandler
	adminHandler        *handler.AdminHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	portalHandler *handler.PortalHandler,
	receptionHandler *handler.ReceptionHandler,
	triageHandler *handler.TriageHandler,
	consultationHandler *handler.ConsultationHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		portalHandler:       portalHandler,
		receptionHandler:    receptionHandler,
		triageHandler:       triageHandler,
		consultationHandler: consultationHandler,
		adminHandler:        adminHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login/staff", r.authHandler.StaffLogin).Methods(http.MethodPost)
	auth.HandleFunc("/login/patient", r.authHandler.PatientLogin).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Patient portal. Registration is public; everything else needs a
	// patient session.
	api.HandleFunc("/portal/register", r.portalHandler.Register).Methods(http.MethodPost)

	portal := api.PathPrefix("/portal").Subrouter()
	portal.Use(r.authMiddleware.Authenticate)
	portal.Use(middleware.RequirePatient)
	portal.HandleFunc("/appointments", r.portalHandler.RequestAppointment).Methods(http.MethodPost)
	portal.HandleFunc("/appointments", r.portalHandler.GetMyAppointments).Methods(http.MethodGet)
	portal.HandleFunc("/profile", r.portalHandler.GetProfile).Methods(http.MethodGet)
	portal.HandleFunc("/password", r.portalHandler.ChangePassword).Methods(http.MethodPut)

	// Reception desk
	reception := api.PathPrefix("/reception").Subrouter()
	reception.Use(r.authMiddleware.Authenticate)
	reception.Use(middleware.RequireReceptionist)
	reception.HandleFunc("/walk-ins", r.receptionHandler.RegisterWalkIn).Methods(http.MethodPost)
	reception.HandleFunc("/appointments/pending", r.receptionHandler.ListPendingAppointments).Methods(http.MethodGet)
	reception.HandleFunc("/appointments/{id}/allocate", r.receptionHandler.AllocateSlot).Methods(http.MethodPost)
	reception.HandleFunc("/appointments/{id}/reject", r.receptionHandler.RejectAppointment).Methods(http.MethodPost)
	reception.HandleFunc("/patients/{id}/check-in", r.receptionHandler.CheckInPatient).Methods(http.MethodPost)
	reception.HandleFunc("/patients/search", r.receptionHandler.SearchPatient).Methods(http.MethodGet)

	// Triage station (interns and doctors)
	triage := api.PathPrefix("/triage").Subrouter()
	triage.Use(r.authMiddleware.Authenticate)
	triage.Use(middleware.RequireTriageStaff)
	triage.HandleFunc("/queue", r.triageHandler.GetQueue).Methods(http.MethodGet)
	triage.HandleFunc("/patients/{id}/vitals", r.triageHandler.RecordVitals).Methods(http.MethodPost)
	triage.HandleFunc("/patients/{id}/suggestion", r.triageHandler.SuggestTriage).Methods(http.MethodPost)
	triage.HandleFunc("/patients/{id}/assign", r.triageHandler.AssignToDoctor).Methods(http.MethodPost)

	// Doctor's station
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/queue", r.consultationHandler.GetQueue).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id}/draft-notes", r.consultationHandler.DraftNotes).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/complete", r.consultationHandler.Complete).Methods(http.MethodPost)

	// Admin console (read-only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/patients", r.adminHandler.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.adminHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}/audit", r.adminHandler.GetPatientAudit).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
