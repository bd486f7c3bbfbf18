package http

import (
	"database/sql"
	"net/http"

	"github.com/asr-diagnostics/lims-service/internal/auth"
	"github.com/asr-diagnostics/lims-service/internal/catalog"
	"github.com/asr-diagnostics/lims-service/internal/facility"
	"github.com/asr-diagnostics/lims-service/internal/messaging"
	"github.com/asr-diagnostics/lims-service/internal/patient"
	"github.com/asr-diagnostics/lims-service/internal/registration"
	"github.com/asr-diagnostics/lims-service/internal/testorder"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface) *mux.Router {
	// Initialize facility components
	facilityRepo := facility.NewRepository(db)
	facilityService := facility.NewService(facilityRepo)
	facilityHandler := facility.NewHandler(facilityService)

	// Initialize catalog components
	catalogRepo := catalog.NewRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	// Initialize registration components
	regRepo := registration.NewRepository(db)
	regService := registration.NewService(regRepo, publisher)
	regHandler := registration.NewHandler(regService)

	// Initialize patient query components
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientService)

	// Initialize test workflow components
	orderRepo := testorder.NewRepository(db)
	orderService := testorder.NewService(orderRepo, publisher)
	orderHandler := testorder.NewHandler(orderService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("lims-service"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"lims-service"}`))
	}).Methods("GET")

	// Facility routes
	r.Handle("/hospitals",
		auth.Middleware(verifier)(
			auth.RequirePermission("hospital:create", perms)(
				http.HandlerFunc(facilityHandler.CreateHospital),
			),
		),
	).Methods("POST")

	r.Handle("/hospitals",
		auth.Middleware(verifier)(
			auth.RequirePermission("hospital:view", perms)(
				http.HandlerFunc(facilityHandler.ListHospitals),
			),
		),
	).Methods("GET")

	r.Handle("/hospitals/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("hospital:view", perms)(
				http.HandlerFunc(facilityHandler.GetHospital),
			),
		),
	).Methods("GET")

	r.Handle("/hospitals/{id}/nodals",
		auth.Middleware(verifier)(
			auth.RequirePermission("nodal:view", perms)(
				http.HandlerFunc(facilityHandler.ListNodals),
			),
		),
	).Methods("GET")

	r.Handle("/nodals",
		auth.Middleware(verifier)(
			auth.RequirePermission("nodal:create", perms)(
				http.HandlerFunc(facilityHandler.CreateNodal),
			),
		),
	).Methods("POST")

	// Catalog routes
	r.Handle("/investigations",
		auth.Middleware(verifier)(
			auth.RequirePermission("catalog:create", perms)(
				http.HandlerFunc(catalogHandler.CreateInvestigation),
			),
		),
	).Methods("POST")

	r.Handle("/investigations",
		auth.Middleware(verifier)(
			auth.RequirePermission("catalog:view", perms)(
				http.HandlerFunc(catalogHandler.ListInvestigations),
			),
		),
	).Methods("GET")

	r.Handle("/investigations/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("catalog:view", perms)(
				http.HandlerFunc(catalogHandler.GetInvestigation),
			),
		),
	).Methods("GET")

	// Registration route
	r.Handle("/patients/register",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:register", perms)(
				http.HandlerFunc(regHandler.Register),
			),
		),
	).Methods("POST")

	// Patient query routes
	r.Handle("/patients/today",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.ListTodayPatients),
			),
		),
	).Methods("GET")

	r.Handle("/patients/today/ppp",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.ListTodayPPPPatients),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.GetPatient),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:update", perms)(
				http.HandlerFunc(patientHandler.UpdatePatient),
			),
		),
	).Methods("PUT")

	// Test workflow routes
	r.Handle("/tests/center",
		auth.Middleware(verifier)(
			auth.RequirePermission("test:view", perms)(
				http.HandlerFunc(orderHandler.ListCenterEntries),
			),
		),
	).Methods("GET")

	r.Handle("/tests/send-to-node",
		auth.Middleware(verifier)(
			auth.RequirePermission("test:update", perms)(
				http.HandlerFunc(orderHandler.SendToNode),
			),
		),
	).Methods("POST")

	r.Handle("/tests/status",
		auth.Middleware(verifier)(
			auth.RequirePermission("test:update", perms)(
				http.HandlerFunc(orderHandler.UpdateStatus),
			),
		),
	).Methods("PUT")

	r.Handle("/tests/{id}/result",
		auth.Middleware(verifier)(
			auth.RequirePermission("report:enter", perms)(
				http.HandlerFunc(orderHandler.EnterResult),
			),
		),
	).Methods("PUT")

	return r
}
