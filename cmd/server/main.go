package main

import (
	"alcyxob/fittrack/internal/api"
	"alcyxob/fittrack/internal/config"
	"alcyxob/fittrack/internal/repository/mongo"
	"alcyxob/fittrack/internal/service"
	"alcyxob/fittrack/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title FitTrack API
// @version 1.0
// @description API for logging workouts, meals, weight and goals, and for trainers coaching their clients.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting FitTrack Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid config: %v", err)
	}
	if cfg.Server.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage := storage.NewDisabledStorage()
	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
		log.Printf("File storage: bucket %s", cfg.S3.BucketName)
	} else {
		log.Println("WARN: No S3 bucket configured, avatar uploads are disabled.")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	mealRepo := mongo.NewMongoMealRepository(appDB)
	weightRepo := mongo.NewMongoWeightRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	requestRepo := mongo.NewMongoTrainerRequestRepository(appDB)
	planRepo := mongo.NewMongoTrainerPlanRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:    service.NewAuthService(userRepo, fileStorage, cfg.JWT.Secret, cfg.JWT.Expiration),
		Client:  service.NewClientService(userRepo, requestRepo, planRepo),
		Trainer: service.NewTrainerService(userRepo, requestRepo, planRepo, workoutRepo, mealRepo, weightRepo, goalRepo),
		Workout: service.NewWorkoutService(workoutRepo),
		Meal:    service.NewMealService(mealRepo),
		Weight:  service.NewWeightService(weightRepo),
		Goal:    service.NewGoalService(goalRepo),
		Report:  service.NewReportService(workoutRepo, mealRepo, weightRepo, goalRepo),
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.CORS.AllowedOrigins(), services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
