// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Datasets: one row per uploaded or seeded batch of vote records
CREATE TABLE IF NOT EXISTS dataset (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT 'upload' CHECK (source IN ('upload', 'sample')),
    record_count INTEGER NOT NULL DEFAULT 0,
    dropped_rows INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Raw vote records. The serial id preserves ingest order, which the
-- aggregator depends on for its documented tie-breaks.
CREATE TABLE IF NOT EXISTS vote_record (
    id BIGSERIAL PRIMARY KEY,
    dataset_id TEXT NOT NULL REFERENCES dataset(id) ON DELETE CASCADE,
    location_name TEXT NOT NULL,
    parent_name TEXT NOT NULL DEFAULT '',
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    party TEXT NOT NULL,
    candidate TEXT NOT NULL,
    votes INTEGER NOT NULL CHECK (votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_vote_record_dataset ON vote_record(dataset_id);
`
