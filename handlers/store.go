// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/DOMINUSBABEL/VOTOFLOW/ingest"
	"github.com/DOMINUSBABEL/VOTOFLOW/live"
	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/tally"
)

// fetchDataset loads one dataset's metadata. Returns sql.ErrNoRows when
// the id is unknown.
func fetchDataset(db *sql.DB, datasetID string) (models.Dataset, error) {
	var ds models.Dataset
	err := db.QueryRow(`
		SELECT id, name, source, record_count, dropped_rows, created_at
		FROM dataset
		WHERE id = $1
	`, datasetID).Scan(&ds.ID, &ds.Name, &ds.Source, &ds.RecordCount, &ds.DroppedRows, &ds.CreatedAt)
	return ds, err
}

// fetchRecords loads a dataset's raw rows in ingest order, which the
// aggregator's tie-breaks depend on.
func fetchRecords(db *sql.DB, datasetID string) ([]models.VoteRecord, error) {
	rows, err := db.Query(`
		SELECT location_name, parent_name, latitude, longitude, party, candidate, votes
		FROM vote_record
		WHERE dataset_id = $1
		ORDER BY id
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.VoteRecord
	for rows.Next() {
		var rec models.VoteRecord
		if err := rows.Scan(&rec.Location, &rec.Parent, &rec.Latitude, &rec.Longitude,
			&rec.Party, &rec.Candidate, &rec.Votes); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// insertDataset stores a batch and its metadata in one transaction.
func insertDataset(db *sql.DB, ds models.Dataset, records []models.VoteRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO dataset (id, name, source, record_count, dropped_rows, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ds.ID, ds.Name, ds.Source, ds.RecordCount, ds.DroppedRows, ds.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dataset: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO vote_record (dataset_id, location_name, parent_name, latitude, longitude, party, candidate, votes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(ds.ID, rec.Location, rec.Parent, rec.Latitude, rec.Longitude,
			rec.Party, rec.Candidate, rec.Votes); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	return tx.Commit()
}

// SeedSampleDataset installs the embedded demo dataset unless one is
// already present. Returns the sample dataset's id either way.
func SeedSampleDataset(db *sql.DB) (string, error) {
	var existing string
	err := db.QueryRow(`SELECT id FROM dataset WHERE source = $1 LIMIT 1`, models.SourceSample).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	records := ingest.SampleRecords()
	ds := models.Dataset{
		ID:          uuid.NewString(),
		Name:        ingest.SampleName,
		Source:      models.SourceSample,
		RecordCount: len(records),
		CreatedAt:   time.Now(),
	}
	if err := insertDataset(db, ds, records); err != nil {
		return "", err
	}
	return ds.ID, nil
}

// aggregateFor returns the dataset's current aggregate view: the live
// snapshot while a stream session runs, otherwise a fresh aggregation of
// the stored records.
func aggregateFor(db *sql.DB, hub *live.Hub, datasetID string) ([]models.LocationData, bool, error) {
	if hub != nil {
		if snapshot, ok := hub.Snapshot(datasetID); ok {
			return snapshot, true, nil
		}
	}

	records, err := fetchRecords(db, datasetID)
	if err != nil {
		return nil, false, err
	}
	return tally.Aggregate(records), false, nil
}
