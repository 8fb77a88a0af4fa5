// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the PostgreSQL schema.

# Tables

  - dataset: metadata for each stored batch (name, source, record and
    dropped-row counts)
  - vote_record: raw rows, ordered by a serial id so reads reproduce
    ingest order and aggregation stays deterministic across restarts

Aggregates are never stored; they are recomputed from vote_record on
demand, so a new upload replaces a dataset's aggregate view wholesale.
*/
package db
