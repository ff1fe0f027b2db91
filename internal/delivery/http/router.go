package http

import (
	"net/http"

	"github.com/Moraarn/sistercheck/internal/delivery/http/handler"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router *mux.Router

	userHandler         *handler.UserHandler
	patientHandler      *handler.PatientHandler
	adminHandler        *handler.AdminHandler
	symptomHandler      *handler.SymptomHandler
	riskHandler         *handler.RiskAssessmentHandler
	careTemplateHandler *handler.CareTemplateHandler
	chatHandler         *handler.ChatHandler
	crystalHandler      *handler.CrystalHandler
	placeHandler        *handler.PlaceHandler

	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware

	userGuard    func(http.Handler) http.Handler
	patientGuard func(http.Handler) http.Handler
	adminGuard   func(http.Handler) http.Handler
}

func NewRouter(
	userHandler *handler.UserHandler,
	patientHandler *handler.PatientHandler,
	adminHandler *handler.AdminHandler,
	symptomHandler *handler.SymptomHandler,
	riskHandler *handler.RiskAssessmentHandler,
	careTemplateHandler *handler.CareTemplateHandler,
	chatHandler *handler.ChatHandler,
	crystalHandler *handler.CrystalHandler,
	placeHandler *handler.PlaceHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	userLoader middleware.Loader[entity.User],
	patientLoader middleware.Loader[entity.Patient],
	adminLoader middleware.Loader[entity.Admin],
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		userHandler:         userHandler,
		patientHandler:      patientHandler,
		adminHandler:        adminHandler,
		symptomHandler:      symptomHandler,
		riskHandler:         riskHandler,
		careTemplateHandler: careTemplateHandler,
		chatHandler:         chatHandler,
		crystalHandler:      crystalHandler,
		placeHandler:        placeHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		userGuard:           authMiddleware.RequireUser(userLoader),
		patientGuard:        authMiddleware.RequirePatient(patientLoader),
		adminGuard:          authMiddleware.RequireAdmin(adminLoader),
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// User routes (public)
	users := api.PathPrefix("/users").Subrouter()
	users.HandleFunc("/signup", r.userHandler.Register).Methods(http.MethodPost)
	users.HandleFunc("/login", r.userHandler.Login).Methods(http.MethodPost)
	users.HandleFunc("/forgot-password", r.userHandler.ForgotPassword).Methods(http.MethodPost)
	users.HandleFunc("/reset-password/{token}", r.userHandler.ResetPassword).Methods(http.MethodPatch)

	// User routes (protected)
	usersProtected := api.PathPrefix("/users").Subrouter()
	usersProtected.Use(r.userGuard)
	usersProtected.HandleFunc("/logout", r.userHandler.Logout).Methods(http.MethodPost)
	usersProtected.HandleFunc("/me", r.userHandler.Profile).Methods(http.MethodGet)
	usersProtected.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPatch)
	usersProtected.HandleFunc("/me", r.userHandler.DeleteAccount).Methods(http.MethodDelete)

	// User management (admin role within the user collection)
	userAdmin := api.PathPrefix("/users").Subrouter()
	userAdmin.Use(r.userGuard)
	userAdmin.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	userAdmin.HandleFunc("", r.userHandler.CreateByAdmin).Methods(http.MethodPost)
	userAdmin.HandleFunc("", r.userHandler.List).Methods(http.MethodGet)
	userAdmin.HandleFunc("/role/{role}", r.userHandler.ListByRole).Methods(http.MethodGet)
	userAdmin.HandleFunc("/{id}", r.userHandler.GetByID).Methods(http.MethodGet)
	userAdmin.HandleFunc("/{id}", r.userHandler.UpdateByID).Methods(http.MethodPatch)
	userAdmin.HandleFunc("/{id}", r.userHandler.DeleteByID).Methods(http.MethodDelete)

	// Patient routes (public)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.HandleFunc("/signup", r.patientHandler.Signup).Methods(http.MethodPost)
	patients.HandleFunc("/signin", r.patientHandler.Signin).Methods(http.MethodPost)
	patients.HandleFunc("/with-assessment", r.patientHandler.CreateWithAssessment).Methods(http.MethodPost)

	// Patient routes (protected, patient token)
	patientsProtected := api.PathPrefix("/patients").Subrouter()
	patientsProtected.Use(r.patientGuard)
	patientsProtected.HandleFunc("/logout", r.patientHandler.Logout).Methods(http.MethodPost)
	patientsProtected.HandleFunc("/me", r.patientHandler.Profile).Methods(http.MethodGet)
	patientsProtected.HandleFunc("/me", r.patientHandler.UpdateProfile).Methods(http.MethodPatch)

	// Patient directory (clinical staff)
	patientStaff := api.PathPrefix("/patients").Subrouter()
	patientStaff.Use(r.userGuard)
	patientStaff.Use(r.authMiddleware.RequireRole(entity.RoleNurse, entity.RoleAdmin))
	patientStaff.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patientStaff.HandleFunc("/search", r.patientHandler.Search).Methods(http.MethodGet)

	// Symptom tracking
	symptoms := api.PathPrefix("/symptoms").Subrouter()
	symptoms.Use(r.userGuard)
	symptoms.HandleFunc("", r.symptomHandler.Create).Methods(http.MethodPost)
	symptoms.HandleFunc("", r.symptomHandler.List).Methods(http.MethodGet)
	symptoms.HandleFunc("/latest", r.symptomHandler.Latest).Methods(http.MethodGet)
	symptoms.HandleFunc("/stats", r.symptomHandler.Stats).Methods(http.MethodGet)
	symptoms.HandleFunc("/recent", r.symptomHandler.Recent).Methods(http.MethodGet)
	symptoms.HandleFunc("/severity/{severity}", r.symptomHandler.BySeverity).Methods(http.MethodGet)
	symptoms.HandleFunc("/{id}", r.symptomHandler.GetByID).Methods(http.MethodGet)
	symptoms.HandleFunc("/{id}", r.symptomHandler.Update).Methods(http.MethodPatch)
	symptoms.HandleFunc("/{id}", r.symptomHandler.Delete).Methods(http.MethodDelete)

	// Risk assessments
	risk := api.PathPrefix("/risk-assessment").Subrouter()
	risk.Use(r.userGuard)
	risk.HandleFunc("", r.riskHandler.Create).Methods(http.MethodPost)
	risk.HandleFunc("", r.riskHandler.List).Methods(http.MethodGet)
	risk.HandleFunc("/latest", r.riskHandler.Latest).Methods(http.MethodGet)
	risk.HandleFunc("/{id}", r.riskHandler.GetByID).Methods(http.MethodGet)

	// Care templates
	care := api.PathPrefix("/care-template").Subrouter()
	care.Use(r.userGuard)
	care.HandleFunc("", r.careTemplateHandler.Create).Methods(http.MethodPost)
	care.HandleFunc("", r.careTemplateHandler.List).Methods(http.MethodGet)
	care.HandleFunc("/latest", r.careTemplateHandler.Latest).Methods(http.MethodGet)
	care.HandleFunc("/stats", r.careTemplateHandler.Stats).Methods(http.MethodGet)
	care.HandleFunc("/status/{status}", r.careTemplateHandler.ByStatus).Methods(http.MethodGet)
	care.HandleFunc("/{id}", r.careTemplateHandler.GetByID).Methods(http.MethodGet)
	care.HandleFunc("/{id}", r.careTemplateHandler.Update).Methods(http.MethodPatch)
	care.HandleFunc("/{id}", r.careTemplateHandler.Delete).Methods(http.MethodDelete)

	// Direct messaging
	chat := api.PathPrefix("/chat").Subrouter()
	chat.Use(r.userGuard)
	chat.HandleFunc("/send", r.chatHandler.Send).Methods(http.MethodPost)
	chat.HandleFunc("/rooms", r.chatHandler.Rooms).Methods(http.MethodGet)
	chat.HandleFunc("/unread-count", r.chatHandler.UnreadCount).Methods(http.MethodGet)
	chat.HandleFunc("/mark-read", r.chatHandler.MarkRead).Methods(http.MethodPatch)
	chat.HandleFunc("/messages/{userId}", r.chatHandler.Messages).Methods(http.MethodGet)
	chat.HandleFunc("/messages/{id}", r.chatHandler.DeleteMessage).Methods(http.MethodDelete)

	// Crystal assistant
	crystal := api.PathPrefix("/crystal").Subrouter()
	crystal.Use(r.userGuard)
	crystal.HandleFunc("/talk", r.crystalHandler.Talk).Methods(http.MethodPost)
	crystal.HandleFunc("/sessions", r.crystalHandler.Sessions).Methods(http.MethodGet)
	crystal.HandleFunc("/sessions/{sessionId}", r.crystalHandler.SessionMessages).Methods(http.MethodGet)
	crystal.HandleFunc("/sessions/{sessionId}", r.crystalHandler.DeleteSession).Methods(http.MethodDelete)

	// Nearby facilities
	places := api.PathPrefix("/places").Subrouter()
	places.Use(r.userGuard)
	places.HandleFunc("/nearby", r.placeHandler.Nearby).Methods(http.MethodGet)

	// Back-office admin accounts
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/signin", r.adminHandler.Signin).Methods(http.MethodPost)

	adminProtected := api.PathPrefix("/admin").Subrouter()
	adminProtected.Use(r.adminGuard)
	adminProtected.HandleFunc("/logout", r.adminHandler.Logout).Methods(http.MethodPost)
	adminProtected.HandleFunc("/me", r.adminHandler.Profile).Methods(http.MethodGet)
	adminProtected.HandleFunc("/me", r.adminHandler.UpdateProfile).Methods(http.MethodPatch)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
