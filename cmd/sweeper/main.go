package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"carhive-backend/internal/config"
	"carhive-backend/internal/logger"
)

// The sweeper drives expiry of overdue rentals against a running server.
// Rental state lives in the server process, so the sweep goes over HTTP
// rather than touching the database directly.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	serverURL := flag.String("server", "", "Base URL of the marketplace server (defaults to the configured address)")
	runOnce := flag.Bool("run-once", false, "Run the sweep once and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Carhive Expiry Sweeper...", "log_level", cfg.Log.Level)

	base := *serverURL
	if base == "" {
		base = fmt.Sprintf("http://%s", cfg.GetServerAddress())
	}
	sweepURL := base + "/api/v1/rentals/expire-overdue"
	client := &http.Client{Timeout: 30 * time.Second}

	sweep := func() {
		if err := runSweep(client, sweepURL); err != nil {
			logger.Error("Sweep failed", "url", sweepURL, "error", err)
		}
	}

	// Check if running a single sweep
	if *runOnce {
		logger.Info("Running sweep once", "url", sweepURL)
		sweep()
		logger.Info("Sweep completed")
		return
	}

	// Initialize Scheduler
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	if _, err := c.AddFunc(cfg.Scheduler.ExpireOverdueRentals, sweep); err != nil {
		log.Fatalf("Failed to schedule sweep: %v", err)
	}

	c.Start()
	logger.Info("Sweeper is running. Press Ctrl+C to stop.", "schedule", cfg.Scheduler.ExpireOverdueRentals)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down sweeper...")
	ctx := c.Stop()
	<-ctx.Done()
	logger.Info("Sweeper stopped. Goodbye!")
}

// runSweep posts one expire-overdue request and logs the outcome.
func runSweep(client *http.Client, url string) error {
	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sweep returned status %d: %s", resp.StatusCode, string(body))
	}
	logger.Info("Sweep succeeded", "response", string(body))
	return nil
}
