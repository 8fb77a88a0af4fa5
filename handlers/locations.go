// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DOMINUSBABEL/VOTOFLOW/cliparse"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/middleware"
	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/tally"
)

type ViewHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *live.Hub
}

func NewViewHandler(db *sql.DB, cfg cliparse.Config, hub *live.Hub) *ViewHandler {
	return &ViewHandler{db: db, cfg: cfg, hub: hub}
}

// GetLocations handles GET /datasets/{id}/locations.
// Runs the full pipeline: aggregate (or live snapshot) -> filter ->
// stats -> classify, and returns markers, leaderboards, and the legend
// for the requested view mode.
func (h *ViewHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = models.ModeHeat
	}
	if !models.ValidMode(mode) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "mode must be heat, party, or audit")
		return
	}

	filters, err := parseFilters(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
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

	aggregate, isLive, err := aggregateFor(h.db, h.hub, datasetID)
	if err != nil {
		slog.Error("failed to load aggregate", "error", err, "dataset_id", datasetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	visible := tally.Filter(aggregate, filters)
	stats := tally.StatsFor(visible)

	markers := make([]models.Marker, len(visible))
	anomalies := 0
	for i, loc := range visible {
		style := tally.Classify(loc, mode, stats)
		if style.Emphasize {
			anomalies++
		}
		markers[i] = models.Marker{
			LocationData: loc,
			Style:        style,
			Label:        markerLabel(loc),
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.LocationsResponse{
		Mode:      mode,
		Live:      isLive,
		Markers:   markers,
		Stats:     stats,
		Summary:   tally.Summarize(visible, filters),
		Legend:    tally.Legend(mode, visible),
		Anomalies: anomalies,
	})
}

// GetSummary handles GET /datasets/{id}/summary: just the leaderboards
// over the filtered set.
func (h *ViewHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	filters, err := parseFilters(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
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

	aggregate, _, err := aggregateFor(h.db, h.hub, datasetID)
	if err != nil {
		slog.Error("failed to load aggregate", "error", err, "dataset_id", datasetID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	visible := tally.Filter(aggregate, filters)
	middleware.JSONResponse(w, http.StatusOK, tally.Summarize(visible, filters))
}

// parseFilters reads the filter query parameters. Absent party and
// candidate values mean the "all" sentinel.
func parseFilters(r *http.Request) (models.FilterState, error) {
	filters := models.FilterState{
		Party:     models.FilterAll,
		Candidate: models.FilterAll,
	}

	if p := r.URL.Query().Get("party"); p != "" {
		filters.Party = p
	}
	if c := r.URL.Query().Get("candidate"); c != "" {
		filters.Candidate = c
	}
	if mv := r.URL.Query().Get("min_votes"); mv != "" {
		n, err := strconv.Atoi(mv)
		if err != nil || n < 0 {
			return models.FilterState{}, fmt.Errorf("min_votes must be a non-negative integer")
		}
		filters.MinVotes = n
	}

	return filters, nil
}

// markerLabel renders the popup text for one location.
func markerLabel(loc models.LocationData) string {
	if loc.WinningParty == "" {
		return fmt.Sprintf("%s (%s): %d votes", loc.Name, loc.Parent, loc.TotalVotes)
	}
	return fmt.Sprintf("%s (%s): %d votes, leading %s", loc.Name, loc.Parent, loc.TotalVotes, loc.WinningParty)
}
