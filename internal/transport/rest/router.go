package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"venturescope/internal/service"
	"venturescope/internal/transport/rest/handler"
	"venturescope/internal/transport/rest/middleware"
	"venturescope/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	IdeaService       *service.IdeaService
	AssessmentService *service.AssessmentService
	StageService      *service.StageService
	AnswerService     *service.AnswerService
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	ideaHandler := handler.NewIdeaHandler(c.IdeaService, c.AssessmentService)
	stageHandler := handler.NewStageHandler(c.IdeaService, c.StageService, c.AnswerService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.IdeaService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/ideas/{ideaId}", wsHandler.IdeaWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Authenticated routes
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/ideas", ideaHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/ideas", ideaHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}", ideaHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}/assessment", ideaHandler.GetAssessment).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}/stages", stageHandler.ListStages).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}/stages/{stageId}", stageHandler.GetStage).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}/stages/{stageId}/complete", stageHandler.CompleteStage).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}/stages/{stageId}/answers", stageHandler.SubmitAnswers).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/ideas/{ideaId}/stages/{stageId}/answers", stageHandler.GetAnswers).Methods("GET", "OPTIONS")

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
