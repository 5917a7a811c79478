package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	authHandler *AuthHandler,
	generationHandler *GenerationHandler,
	sessionMiddleware func(http.Handler) http.Handler,
) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestIDMiddleware)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"mirror-of-dreams"}`))
	}).Methods("GET")

	// Session issuance happens before a credential exists
	api.HandleFunc("/auth/session", authHandler.CreateSession).Methods("POST")

	// Protected routes (require a valid session)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(sessionMiddleware)

	protected.HandleFunc("/auth/validate", authHandler.ValidateSession).Methods("GET")
	protected.HandleFunc("/reflections", generationHandler.CreateReflection).Methods("POST")
	protected.HandleFunc("/usage", generationHandler.GetUsage).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:4173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
