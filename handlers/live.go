// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/DOMINUSBABEL/VOTOFLOW/auth"
	"github.com/DOMINUSBABEL/VOTOFLOW/cliparse"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/middleware"
	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/tally"
)

type LiveHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *live.Hub
}

func NewLiveHandler(db *sql.DB, cfg cliparse.Config, hub *live.Hub) *LiveHandler {
	return &LiveHandler{db: db, cfg: cfg, hub: hub}
}

// Start handles POST /datasets/{id}/live/start (admin)
func (h *LiveHandler) Start(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	if err := auth.ValidateAdminKey(datasetID, r.Header.Get("X-Admin-Key"), h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if _, err := fetchDataset(h.db, datasetID); err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Dataset not found")
		return
	} else if err != nil {
		slog.Error("failed to query dataset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	records, err := fetchRecords(h.db, datasetID)
	if err != nil {
		slog.Error("failed to load records", "error", err, "dataset_id", datasetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := h.hub.Start(datasetID, tally.Aggregate(records)); err != nil {
		if errors.Is(err, live.ErrAlreadyRunning) {
			middleware.ErrorResponse(w, http.StatusConflict, "Live stream already running")
			return
		}
		slog.Error("failed to start live stream", "error", err, "dataset_id", datasetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start live stream")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LiveStatusResponse{Running: true})
}

// Stop handles POST /datasets/{id}/live/stop (admin)
func (h *LiveHandler) Stop(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	if err := auth.ValidateAdminKey(datasetID, r.Header.Get("X-Admin-Key"), h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if err := h.hub.Stop(datasetID); err != nil {
		if errors.Is(err, live.ErrNotRunning) {
			middleware.ErrorResponse(w, http.StatusConflict, "No live stream running")
			return
		}
		slog.Error("failed to stop live stream", "error", err, "dataset_id", datasetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to stop live stream")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LiveStatusResponse{Running: false})
}

// Status handles GET /datasets/{id}/live
func (h *LiveHandler) Status(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	running, ticks := h.hub.Status(datasetID)
	middleware.JSONResponse(w, http.StatusOK, models.LiveStatusResponse{
		Running: running,
		Ticks:   ticks,
	})
}
