// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DOMINUSBABEL/VOTOFLOW/auth"
	"github.com/DOMINUSBABEL/VOTOFLOW/cliparse"
	"github.com/DOMINUSBABEL/VOTOFLOW/ingest"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/middleware"
	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/tally"
)

// MaxUploadBytes caps the CSV body size.
const MaxUploadBytes = 32 << 20

type DatasetHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *live.Hub
}

func NewDatasetHandler(db *sql.DB, cfg cliparse.Config, hub *live.Hub) *DatasetHandler {
	return &DatasetHandler{db: db, cfg: cfg, hub: hub}
}

// Upload handles POST /datasets. The body is the delimited text file;
// ?name= labels the dataset.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "Uploaded dataset"
	}

	records, droppedRows, err := ingest.ParseCSV(http.MaxBytesReader(w, r.Body, MaxUploadBytes))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Could not read upload")
		return
	}

	ds := models.Dataset{
		ID:          uuid.NewString(),
		Name:        name,
		Source:      models.SourceUpload,
		RecordCount: len(records),
		DroppedRows: droppedRows,
		CreatedAt:   time.Now(),
	}

	if err := insertDataset(h.db, ds, records); err != nil {
		slog.Error("failed to store dataset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store dataset")
		return
	}

	locations := tally.Aggregate(records)

	slog.Info("dataset uploaded",
		"dataset_id", ds.ID,
		"records", len(records),
		"dropped", droppedRows,
		"locations", len(locations),
	)

	middleware.JSONResponse(w, http.StatusCreated, models.UploadResponse{
		DatasetID:   ds.ID,
		AdminKey:    auth.GenerateAdminKey(ds.ID, h.cfg.AdminKeySalt),
		RecordCount: len(records),
		DroppedRows: droppedRows,
		Locations:   len(locations),
	})
}

// List handles GET /datasets
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, source, record_count, dropped_rows, created_at
		FROM dataset
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query datasets", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	datasets := []models.Dataset{}
	for rows.Next() {
		var ds models.Dataset
		if err := rows.Scan(&ds.ID, &ds.Name, &ds.Source, &ds.RecordCount, &ds.DroppedRows, &ds.CreatedAt); err != nil {
			slog.Error("failed to scan dataset", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		datasets = append(datasets, ds)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read datasets", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, datasets)
}

// Get handles GET /datasets/{id}
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	ds, err := fetchDataset(h.db, datasetID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Dataset not found")
		return
	}
	if err != nil {
		slog.Error("failed to query dataset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ds)
}

// Delete handles DELETE /datasets/{id} (admin)
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("id")

	if err := auth.ValidateAdminKey(datasetID, r.Header.Get("X-Admin-Key"), h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	res, err := h.db.Exec(`DELETE FROM dataset WHERE id = $1`, datasetID)
	if err != nil {
		slog.Error("failed to delete dataset", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Dataset not found")
		return
	}

	// Tear down anything still running against the dataset.
	if h.hub != nil {
		_ = h.hub.Stop(datasetID)
	}

	slog.Info("dataset deleted", "dataset_id", datasetID)
	w.WriteHeader(http.StatusNoContent)
}
