// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/DOMINUSBABEL/VOTOFLOW/assistant"
	"github.com/DOMINUSBABEL/VOTOFLOW/cliparse"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/middleware"
	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

type ChatHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *live.Hub
	svc assistant.Service // nil when the assistant is unconfigured

	mu     sync.Mutex
	primed map[string]bool
}

func NewChatHandler(db *sql.DB, cfg cliparse.Config, hub *live.Hub, svc assistant.Service) *ChatHandler {
	return &ChatHandler{
		db:     db,
		cfg:    cfg,
		hub:    hub,
		svc:    svc,
		primed: make(map[string]bool),
	}
}

// Message handles POST /datasets/{id}/chat.
// A failed assistant round trip degrades to a fallback transcript
// message rather than an opaque error, so the composing indicator on the
// dashboard always resolves.
func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	var req models.ChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
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

	if h.svc == nil {
		middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
			Reply:    assistant.FallbackMessage,
			Fallback: true,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.ChatTimeout)
	defer cancel()

	if err := h.ensurePrimed(ctx, datasetID, req); err != nil {
		slog.Warn("assistant priming failed", "error", err, "dataset_id", datasetID)
		middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
			Reply:    assistant.FallbackMessage,
			Fallback: true,
		})
		return
	}

	reply, err := h.svc.Send(ctx, datasetID, req.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrNoSession) {
			// Session evaporated between priming and sending; re-prime on
			// the next message.
			h.mu.Lock()
			delete(h.primed, datasetID)
			h.mu.Unlock()
		}
		slog.Warn("assistant request failed", "error", err, "dataset_id", datasetID)
		middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
			Reply:    assistant.FallbackMessage,
			Fallback: true,
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChatResponse{
		Reply:     reply.Text,
		Citations: reply.Citations,
	})
}

// Reset handles POST /datasets/{id}/chat/reset: the next message primes
// a fresh session, picking up the current aggregate context.
func (h *ChatHandler) Reset(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	h.mu.Lock()
	delete(h.primed, datasetID)
	h.mu.Unlock()

	if h.svc != nil {
		h.svc.Forget(datasetID)
	}

	slog.Info("assistant session reset", "dataset_id", datasetID)
	w.WriteHeader(http.StatusNoContent)
}

// ensurePrimed creates the dataset's assistant session on first contact,
// seeding it with the current aggregate view and, when provided, the
// operator's coordinates. Missing coordinates never block priming.
func (h *ChatHandler) ensurePrimed(ctx context.Context, datasetID string, req models.ChatRequest) error {
	h.mu.Lock()
	already := h.primed[datasetID]
	h.mu.Unlock()
	if already {
		return nil
	}

	ds, err := fetchDataset(h.db, datasetID)
	if err != nil {
		return err
	}
	locations, _, err := aggregateFor(h.db, h.hub, datasetID)
	if err != nil {
		return err
	}

	dc := assistant.DatasetContext{
		DatasetID:   datasetID,
		DatasetName: ds.Name,
		Locations:   locations,
		UserLat:     req.Latitude,
		UserLng:     req.Longitude,
	}
	if err := h.svc.Prime(ctx, dc); err != nil {
		return err
	}

	h.mu.Lock()
	h.primed[datasetID] = true
	h.mu.Unlock()
	return nil
}
