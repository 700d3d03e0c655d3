package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"impactready/internal/app"
	"impactready/internal/cache"
	"impactready/internal/config"
	"impactready/internal/repository"
	"impactready/internal/service"
	"impactready/internal/transport/rest"
	"impactready/internal/transport/ws"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	a := &app.App{
		CatalogRepo:   repository.NewCatalogRepo(db),
		RunRepo:       repository.NewRunRepo(db),
		AnswerRepo:    repository.NewAnswerRepo(db),
		ResultRepo:    repository.NewResultRepo(db),
		UserRepo:      repository.NewUserRepo(db),
		RunCache:      cache.NewRunCache(rdb),
		CooldownCache: cache.NewCooldownCache(rdb),
		ProgressCache: cache.NewProgressCache(rdb),
		ResultCache:   cache.NewResultCache(rdb),
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize services
	authSvc := service.NewAuthService(a.UserRepo, cfg.JWTSecret)
	userSvc := service.NewUserService(a.UserRepo)
	catalogSvc := service.NewCatalogService(a.CatalogRepo)
	if err := catalogSvc.Load(ctx); err != nil {
		log.Fatal("Failed to load question catalog:", err)
	}
	log.Printf("Catalog loaded: %d sections", len(catalogSvc.Catalog().Sections()))

	answerSvc := service.NewAnswerService(a.AnswerRepo, a.RunRepo, a.RunCache, a.ProgressCache, catalogSvc)
	defer answerSvc.Close()

	assessmentSvc := service.NewAssessmentService(
		a.RunRepo, a.ResultRepo,
		a.RunCache, a.CooldownCache, a.ResultCache,
		catalogSvc, answerSvc,
	)
	assessmentSvc.SetCooldown(cfg.Cooldown)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	answerSvc.SetBroadcaster(wsHub)
	assessmentSvc.SetBroadcaster(wsHub)

	container := &rest.Container{
		AuthService:       authSvc,
		UserService:       userSvc,
		AssessmentService: assessmentSvc,
		AnswerService:     answerSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
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
