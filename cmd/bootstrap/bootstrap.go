package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Moraarn/sistercheck/config"
	deliveryHttp "github.com/Moraarn/sistercheck/internal/delivery/http"
	"github.com/Moraarn/sistercheck/internal/delivery/http/handler"
	"github.com/Moraarn/sistercheck/internal/delivery/http/middleware"
	"github.com/Moraarn/sistercheck/internal/domain/entity"
	"github.com/Moraarn/sistercheck/internal/infrastructure/cache"
	"github.com/Moraarn/sistercheck/internal/infrastructure/database"
	"github.com/Moraarn/sistercheck/internal/repository"
	"github.com/Moraarn/sistercheck/internal/service"
	"github.com/Moraarn/sistercheck/internal/usecase"
	"github.com/Moraarn/sistercheck/pkg/jwt"
	"github.com/Moraarn/sistercheck/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *mongo.Database
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewMongoDatabase(cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *mongo.Database, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Token revocation store
	tokenStore := cache.NewTokenStore(redisClient)

	// Outbound service clients
	predictor := service.NewPredictorClient(cfg.Predictor.BaseURL)
	completer := service.NewMistralClient(cfg.Mistral.URL, cfg.Mistral.APIKey)
	places := service.NewPlacesClient(cfg.Maps.BaseURL, cfg.Maps.APIKey)
	mailer := service.NewMailer(cfg.Email)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	symptomRepo := repository.NewSymptomRepository(db)
	riskRepo := repository.NewRiskAssessmentRepository(db)
	careTemplateRepo := repository.NewCareTemplateRepository(db)
	chatRepo := repository.NewChatRepository(db)
	crystalRepo := repository.NewCrystalRepository(db)

	// Initialize usecases
	careTemplateUsecase := usecase.NewCareTemplateUsecase(log, careTemplateRepo, predictor)
	userUsecase := usecase.NewUserUsecase(log, userRepo, jwtService, tokenStore, mailer)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, jwtService, tokenStore, predictor)
	adminUsecase := usecase.NewAdminUsecase(log, adminRepo, jwtService, tokenStore)
	symptomUsecase := usecase.NewSymptomUsecase(log, symptomRepo, careTemplateUsecase)
	riskUsecase := usecase.NewRiskAssessmentUsecase(log, riskRepo, careTemplateUsecase)
	chatUsecase := usecase.NewChatUsecase(log, chatRepo)
	crystalUsecase := usecase.NewCrystalUsecase(log, crystalRepo, completer)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUsecase, customValidator, jwtService)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator, jwtService)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator, jwtService)
	symptomHandler := handler.NewSymptomHandler(symptomUsecase, customValidator)
	riskHandler := handler.NewRiskAssessmentHandler(riskUsecase, customValidator)
	careTemplateHandler := handler.NewCareTemplateHandler(careTemplateUsecase, customValidator)
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)
	crystalHandler := handler.NewCrystalHandler(crystalUsecase, customValidator)
	placeHandler := handler.NewPlaceHandler(places)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Account loaders for the auth guards
	userLoader := func(ctx context.Context, id string) (*entity.User, error) {
		return userRepo.FindByID(ctx, id)
	}
	patientLoader := func(ctx context.Context, id string) (*entity.Patient, error) {
		return patientRepo.FindByID(ctx, id)
	}
	adminLoader := func(ctx context.Context, id string) (*entity.Admin, error) {
		return adminRepo.FindByID(ctx, id)
	}

	// Initialize router
	router := deliveryHttp.NewRouter(
		userHandler, patientHandler, adminHandler,
		symptomHandler, riskHandler, careTemplateHandler,
		chatHandler, crystalHandler, placeHandler,
		authMiddleware, corsMiddleware,
		userLoader, patientLoader, adminLoader,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close releases the database and cache connections.
func (app *App) Close() {
	if app.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.DB.Client().Disconnect(ctx); err != nil {
			logrus.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			logrus.Errorf("Failed to close Redis client: %v", err)
		}
	}
}
