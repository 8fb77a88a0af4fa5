// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/DOMINUSBABEL/VOTOFLOW/assistant"
	"github.com/DOMINUSBABEL/VOTOFLOW/cliparse"
	"github.com/DOMINUSBABEL/VOTOFLOW/handlers"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, hub *live.Hub, svc assistant.Service) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(db, cfg, hub)
	viewHandler := handlers.NewViewHandler(db, cfg, hub)
	liveHandler := handlers.NewLiveHandler(db, cfg, hub)
	chatHandler := handlers.NewChatHandler(db, cfg, hub, svc)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Dataset management
	mux.HandleFunc("POST /datasets", middleware.WithLogging(datasetHandler.Upload))
	mux.HandleFunc("GET /datasets", middleware.WithLogging(datasetHandler.List))
	mux.HandleFunc("GET /datasets/{id}", middleware.WithLogging(datasetHandler.Get))
	mux.HandleFunc("DELETE /datasets/{id}", middleware.WithLogging(datasetHandler.Delete))

	// Map view pipeline
	mux.HandleFunc("GET /datasets/{id}/locations", middleware.WithLogging(viewHandler.GetLocations))
	mux.HandleFunc("GET /datasets/{id}/summary", middleware.WithLogging(viewHandler.GetSummary))

	// Simulated live stream (admin-controlled)
	mux.HandleFunc("POST /datasets/{id}/live/start", middleware.WithLogging(liveHandler.Start))
	mux.HandleFunc("POST /datasets/{id}/live/stop", middleware.WithLogging(liveHandler.Stop))
	mux.HandleFunc("GET /datasets/{id}/live", middleware.WithLogging(liveHandler.Status))

	// Conversational assistant
	mux.HandleFunc("POST /datasets/{id}/chat", middleware.WithLogging(chatHandler.Message))
	mux.HandleFunc("POST /datasets/{id}/chat/reset", middleware.WithLogging(chatHandler.Reset))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("votoflow API v1"))
	})

	return mux
}
