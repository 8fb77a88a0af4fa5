// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and response types shared by
the ingest, tally, and HTTP layers.

# Domain Types

  - VoteRecord: one raw row — votes for one candidate at one polling
    location
  - LocationData: the aggregate for one polling location, with ordered
    per-party and per-candidate tallies and a derived winning party
  - CountList: an ordered name→votes tally; iteration and tie-break order
    is first-encounter order
  - FilterState: operator-selected party/candidate/min-votes constraints
  - MarkerStyle, ViewStats, Summary, LegendEntry: derived view attributes
  - Dataset: stored batch metadata

# Invariant

For every LocationData produced by the tally package:

	TotalVotes == Parties.Total() == Candidates.Total()

The simulated live stream preserves this invariant on every tick.

# Constants

View modes:

	ModeHeat  = "heat"
	ModeParty = "party"
	ModeAudit = "audit"

Filter sentinel:

	FilterAll = "all"
*/
package models
