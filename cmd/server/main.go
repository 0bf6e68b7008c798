package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venturescope/internal/cache"
	"venturescope/internal/config"
	"venturescope/internal/repository"
	"venturescope/internal/service"
	"venturescope/internal/stage"
	"venturescope/internal/transport/rest"
	"venturescope/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Static form definitions are programmer-owned; a bad one aborts startup.
	if err := stage.CheckForms(); err != nil {
		log.Fatal("Invalid stage form configuration: ", err)
	}

	// Load AI config and log model settings
	aiConfig := config.DefaultAIConfig()
	log.Printf("AI Config:")
	log.Printf("  Classifier: %s", aiConfig.Models.Classifier)
	log.Printf("  Assessment: %s", aiConfig.Models.Assessment)
	if aiConfig.IsEnabled() {
		log.Println("  API Key:    configured ✓")
	} else {
		log.Println("  API Key:    NOT SET (admission fails open, assessments use fallback)")
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := cfg.RedisAddr
	// Remove redis:// prefix if present
	if len(redisAddr) > 8 && redisAddr[:8] == "redis://" {
		redisAddr = redisAddr[8:]
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	ideaRepo := repository.NewIdeaRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	progressRepo := repository.NewProgressRepo(db)

	// Initialize caches
	progressCache := cache.NewProgressCache(rdb)
	assessmentCache := cache.NewAssessmentCache(rdb)

	// Initialize services
	gemini := service.NewGeminiClient(aiConfig)
	authSvc := service.NewAuthService()
	admissionSvc := service.NewAdmissionService(gemini, aiConfig.Models.Classifier)
	assessmentSvc := service.NewAssessmentService(gemini, aiConfig.Models.Assessment, assessmentRepo, assessmentCache)
	ideaSvc := service.NewIdeaService(ideaRepo, admissionSvc, assessmentSvc)
	stageSvc := service.NewStageService(progressRepo, progressCache, assessmentSvc)
	answerSvc := service.NewAnswerService(answerRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)
	stageSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		IdeaService:       ideaSvc,
		AssessmentService: assessmentSvc,
		StageService:      stageSvc,
		AnswerService:     answerSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/ideas")
		log.Println("  GET  /v1/ideas/{ideaId}")
		log.Println("  GET  /v1/ideas/{ideaId}/assessment")
		log.Println("  GET  /v1/ideas/{ideaId}/stages")
		log.Println("  GET  /v1/ideas/{ideaId}/stages/{stageId}")
		log.Println("  POST /v1/ideas/{ideaId}/stages/{stageId}/complete")
		log.Println("  POST/GET /v1/ideas/{ideaId}/stages/{stageId}/answers")
		log.Println("  WS   /v1/ws/ideas/{ideaId}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
