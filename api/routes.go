package api

import (
	"github.com/gorilla/mux"

	"github.com/jobport/jobport/internal/blob"
	"github.com/jobport/jobport/internal/clock"
	"github.com/jobport/jobport/internal/config"
	"github.com/jobport/jobport/internal/db"
	"github.com/jobport/jobport/internal/notify"
	"github.com/jobport/jobport/internal/repository/sqlite"
	"github.com/jobport/jobport/internal/session"
	"github.com/jobport/jobport/internal/upload"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, database *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and shared services
	repo := sqlite.New(database, logger)
	sessions := session.NewRegistry()
	blobs := blob.NewMemoryStore("/blobs")
	notifier := notify.NewSlog(logger)
	clk := clock.System()
	sim := upload.New(blobs, clk, cfg.Upload, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, sessions, cfg.JWTSecret, cfg.TokenDuration)
	jobsHandler := NewJobsHandler(repo, notifier)
	applicationsHandler := NewApplicationsHandler(repo, repo, repo, notifier, clk, cfg.SubmitDelay)
	resumesHandler := NewResumesHandler(sim, repo, repo, notifier)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")
	r.HandleFunc("/blobs/{key}", blobs.ServeBlob).Methods("GET")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(SessionAuthMiddleware(cfg.JWTSecret, sessions))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Job board endpoints
	apiV1.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}", jobsHandler.GetJob).Methods("GET")
	apiV1.HandleFunc("/jobs/{id}/apply", applicationsHandler.Apply).Methods("POST")
	apiV1.HandleFunc("/applications", applicationsHandler.ListApplications).Methods("GET")
	apiV1.HandleFunc("/resumes", resumesHandler.Upload).Methods("POST")

	return r
}
