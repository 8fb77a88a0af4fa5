// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP request handlers.

  - DatasetHandler: CSV upload, listing, metadata, deletion
  - ViewHandler: the aggregation pipeline — filter, stats, classify,
    summarize — rendered as map markers, leaderboards, and a legend
  - LiveHandler: simulated live-stream control and status
  - ChatHandler: the conversational assistant, with fallback transcripts
    when the assistant is unconfigured or failing

Handlers carry *sql.DB and the parsed config; the view and live handlers
additionally share the live.Hub so reads see a running stream's snapshot.
*/
package handlers
