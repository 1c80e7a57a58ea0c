package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "carhive-backend/internal/api/http"
	"carhive-backend/internal/config"
	"carhive-backend/internal/events"
	"carhive-backend/internal/jobs"
	"carhive-backend/internal/logger"
	"carhive-backend/internal/marketplace"
	"carhive-backend/internal/repository/postgres"
	"carhive-backend/internal/scheduler"
	"carhive-backend/internal/security"
	"carhive-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carhive Marketplace Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize the lifecycle engine. The event store sink needs the
	// marketplace identity, which only exists after New, so the fan-out
	// starts with the log sink and the store sink is attached after.
	sink := events.NewFanOut(events.NewLogSink())
	market, capability := marketplace.New(sink)
	sink.Add(events.NewStoreSink(market.ID(), store.EventRepository))

	// Initialize Security. The capability minted above is the only
	// authority for this instance; its token is logged once at startup
	// and never re-issued.
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	capToken, err := tokenManager.IssueCapability(capability.MarketplaceID())
	if err != nil {
		logger.Error("Failed to issue capability token", "error", err)
		log.Fatalf("Failed to issue capability token: %v", err)
	}
	logger.Info("Marketplace initialized", "marketplace_id", market.ID())
	logger.Info("Authority capability token issued", "marketplace_id", market.ID())
	// The token is the instance's only admin credential. Print it once to
	// stdout for the operator instead of writing it into the log stream.
	fmt.Printf("authority capability token: %s\n", capToken)

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.APIKey != "" {
		emailSvc = service.NewEmailService(
			cfg.Email.APIKey,
			cfg.Email.FromEmail,
			cfg.Email.FromName,
			cfg.Email.AuthorityEmail,
			cfg.Email.AuthorityName,
		)
		logger.Info("Email notifications enabled", "from", cfg.Email.FromEmail)
	} else {
		emailSvc = service.NopEmailService{}
		logger.Info("Email notifications disabled (no API key configured)")
	}

	// Initialize Services
	marketplaceSvc := service.NewMarketplaceService(
		market,
		tokenManager,
		marketplace.SystemClock{},
		store.ListingRepository,
		store.RentalRepository,
		store.LedgerRepository,
		emailSvc,
	)

	// Initialize HTTP handlers
	router := mux.NewRouter()
	handler := httpapi.NewMarketplaceHandler(marketplaceSvc)
	handler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Initialize Scheduler for the expiry sweeper
	jobRunner := jobs.NewJobRunner(marketplaceSvc, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
