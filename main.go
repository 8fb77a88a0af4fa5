package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/DOMINUSBABEL/VOTOFLOW/assistant"
	"github.com/DOMINUSBABEL/VOTOFLOW/cliparse"
	"github.com/DOMINUSBABEL/VOTOFLOW/db"
	"github.com/DOMINUSBABEL/VOTOFLOW/handlers"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/middleware"
	"github.com/DOMINUSBABEL/VOTOFLOW/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Install the embedded demo dataset when requested
	if cfg.SeedSample {
		sampleID, err := handlers.SeedSampleDataset(dbConn)
		if err != nil {
			slog.Error("sample seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Sample dataset ready", "dataset_id", sampleID)
	}

	// Live stream hub
	hub := live.NewHub(cfg.LiveInterval, cfg.LiveTickProb, cfg.LiveMaxIncrement)
	defer hub.Shutdown()

	// Conversational assistant; the dashboard degrades to fallback
	// replies when no key is configured
	var svc assistant.Service
	if cfg.GeminiAPIKey != "" {
		gemini, err := assistant.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("assistant initialization failed", "error", err)
			os.Exit(1)
		}
		svc = gemini
		slog.Info("Assistant ready", "model", cfg.GeminiModel)
	} else {
		slog.Warn("GEMINI_API_KEY not set; assistant replies with fallback messages")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg, hub, svc)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
