// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the VOTOFLOW API server.

VOTOFLOW is an electoral-map dashboard backend: it ingests delimited
vote-record files, aggregates them per polling location, classifies the
aggregate into map markers (heat, party, and audit views), simulates a
live result stream, and fronts a grounded conversational assistant for
asking questions about the data.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 4318 -d "postgres://..." -admin-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_KEY_SALT (-admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 4318)
  - GEMINI_API_KEY (-gemini-key): Assistant API key; without it chat
    replies degrade to a fallback message
  - GEMINI_MODEL (-gemini-model): Assistant model (default: gemini-2.5-flash)
  - CHAT_TIMEOUT_S (-chat-timeout): Per-message assistant deadline
  - LIVE_INTERVAL_MS (-live-interval): Simulated stream tick interval
  - LIVE_TICK_PROB (-live-prob): Per-location perturbation probability
  - LIVE_MAX_INCREMENT (-live-max-inc): Vote increment cap per tick
  - SEED_SAMPLE (-seed-sample): Install the embedded demo dataset on boot

# Architecture

The server uses a handler-based architecture with dependency injection:

  - tally: The pure aggregation pipeline (aggregate, filter, classify, perturb)
  - ingest: Delimited vote-record parsing and the embedded sample
  - handlers: HTTP request handlers (datasets, map views, live stream, chat)
  - live: Ticker-driven simulated stream sessions
  - assistant: Gemini-backed conversational layer with search grounding
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
