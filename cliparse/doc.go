// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse builds the server configuration from CLI flags with
environment-variable fallback, loading a .env file first when present.

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): secret for dataset admin key HMAC

Optional settings:

  - PORT (-p): server port (default 4318)
  - GEMINI_API_KEY (--gemini-key): assistant credentials; without it the
    chat endpoint serves fallback transcripts only
  - GEMINI_MODEL (--gemini-model): assistant model (default gemini-2.5-flash)
  - CHAT_TIMEOUT_S (--chat-timeout): assistant request timeout (default 30)
  - LIVE_INTERVAL_MS (--live-interval): stream tick interval (default 3000)
  - LIVE_TICK_PROB (--live-prob): per-location tick probability (default 0.3)
  - LIVE_MAX_INCREMENT (--live-max-inc): max votes per tick (default 40)
  - SEED_SAMPLE (--seed-sample): seed the embedded demo dataset on start
*/
package cliparse
