package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"impactready/internal/service"
	"impactready/internal/transport/rest/handler"
	"impactready/internal/transport/rest/middleware"
	"impactready/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	UserService       *service.UserService
	AssessmentService *service.AssessmentService
	AnswerService     *service.AnswerService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	profileHandler := handler.NewProfileHandler(c.UserService)
	runHandler := handler.NewRunHandler(c.AssessmentService, c.AnswerService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AssessmentService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/runs/{runId}", wsHandler.RunWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/profile", profileHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/profile", profileHandler.Update).Methods("PUT", "OPTIONS")

	userRoutes.HandleFunc("/runs", runHandler.Start).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/runs", runHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/sections", runHandler.Sections).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/sections/{code}/questions", runHandler.Questions).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/answers", runHandler.SaveAnswers).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/answers/flush", runHandler.Flush).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/reset", runHandler.Reset).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/submit", runHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/runs/{runId}/result", runHandler.Result).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
