package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	api "gearshare-backend/internal/api/grpc"
	"gearshare-backend/internal/api/grpc/interceptor"
	httpapi "gearshare-backend/internal/api/http"
	"gearshare-backend/internal/config"
	"gearshare-backend/internal/events"
	"gearshare-backend/internal/identity"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository/postgres"
	"gearshare-backend/internal/security"
	"gearshare-backend/internal/service"
	"gearshare-backend/internal/storage"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearShare Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "grpc_address", cfg.GetServerAddress(), "http_address", cfg.GetHTTPAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Seed the fee configuration store on first start
	feeSvc := service.NewFeeConfigService(store.FeeConfigRepository)
	if err := feeSvc.Bootstrap(ctx, cfg.Pricing.FeeConfig()); err != nil {
		logger.Error("Failed to bootstrap fee configuration", "error", err)
		log.Fatalf("Failed to bootstrap fee configuration: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)
	authInterceptor := interceptor.NewAuthInterceptor(tokenManager)

	// Initialize Storage Service
	if cfg.Storage.Type != "" && cfg.Storage.Type != "mock" {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}
	logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
	photoStorage, err := storage.NewMockStorageService(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize mock storage", "error", err)
		log.Fatalf("Failed to initialize mock storage: %v", err)
	}

	// Initialize Email Service
	emailSvc := newEmailService(cfg)

	// Initialize Event Publisher
	var publisher service.EventPublisher = events.LogPublisher{}
	if cfg.Broker.URL != "" {
		p, err := events.Dial(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			logger.Error("Failed to connect to message broker", "error", err)
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
		publisher = p
		logger.Info("Publishing events to RabbitMQ", "exchange", cfg.Broker.Exchange)
	} else {
		logger.Warn("No broker configured, events are only logged")
	}
	defer publisher.Close()

	// Initialize Services
	sessionDeps := service.SessionDeps{
		Sessions:      store.SessionRepository,
		Bookings:      store.BookingRepository,
		Listings:      store.ListingRepository,
		Users:         store.UserRepository,
		Claims:        store.ClaimRepository,
		Reviews:       store.ReviewRepository,
		Notifications: store.NotificationRepository,
		Email:         emailSvc,
		Events:        publisher,
		Photos:        photoStorage,
		UploadExpiry:  time.Duration(cfg.Storage.URLExpiry) * time.Minute,
	}
	sessionDeps.Identity = identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.IdentityTimeout())

	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.ListingRepository,
		store.UserRepository,
		store.SessionRepository,
		store.FeeConfigRepository,
		emailSvc,
		store.NotificationRepository,
		publisher,
	)
	sessionSvc := service.NewSessionService(sessionDeps)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetServerAddress())
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", cfg.GetServerAddress())
		log.Fatalf("Failed to listen: %v", err)
	}

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(interceptor.Logging(), authInterceptor.Unary()),
	)

	// Register services
	api.RegisterAuthServiceServer(s, api.NewAuthHandler(authSvc))
	api.RegisterBookingServiceServer(s, api.NewBookingHandler(bookingSvc))
	api.RegisterSessionServiceServer(s, api.NewSessionHandler(sessionSvc))
	api.RegisterFeeConfigServiceServer(s, api.NewFeeConfigHandler(feeSvc))
	api.RegisterNotificationServiceServer(s, api.NewNotificationHandler(noteSvc))

	// HTTP server for the presigned photo upload and download URLs
	router := mux.NewRouter()
	httpapi.RegisterPhotoRoutes(router, photoStorage)
	httpServer := &http.Server{
		Addr:              cfg.GetHTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server for photo storage listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", "error", err)
		}
		s.GracefulStop()
	}()

	logger.Info("gRPC server listening", "address", cfg.GetServerAddress())
	if err := s.Serve(lis); err != nil {
		logger.Error("Failed to serve gRPC", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
	logger.Info("Server stopped")
}

func newEmailService(cfg *config.Config) service.EmailService {
	if cfg.Email.Provider == "sendgrid" {
		logger.Info("Sending email through SendGrid", "from", cfg.Email.From)
		return service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	}
	logger.Info("Email provider is log, messages are not delivered")
	return service.NewLogEmailService()
}
