package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/lib/pq"

	"gearshare-backend/internal/config"
	"gearshare-backend/internal/jobs"
	"gearshare-backend/internal/logger"
	"gearshare-backend/internal/repository/postgres"
	"gearshare-backend/internal/scheduler"
	"gearshare-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run one job and exit: "+strings.Join(jobs.Names, ", "))
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GearShare job runner", "log_level", cfg.Log.Level)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)
	emailSvc := service.NewLogEmailService()
	if cfg.Email.Provider == "sendgrid" {
		emailSvc = service.NewSendGridEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	}

	runner := jobs.NewJobRunner(jobs.Repositories{
		Bookings:      store.BookingRepository,
		Listings:      store.ListingRepository,
		Users:         store.UserRepository,
		Sessions:      store.SessionRepository,
		Notifications: store.NotificationRepository,
	}, emailSvc, cfg)

	if *runOnce != "" {
		job, ok := runner.Lookup(*runOnce)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown job %q, available: %s\n", *runOnce, strings.Join(jobs.Names, ", "))
			os.Exit(2)
		}
		job()
		return
	}

	cronScheduler, err := scheduler.NewScheduler(runner)
	if err != nil {
		log.Fatalf("Failed to register cron jobs: %v", err)
	}
	cronScheduler.Start()
	logger.Info("Scheduler running", "jobs", cronScheduler.Entries())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("Stopping scheduler")
	cronScheduler.Stop()
}
