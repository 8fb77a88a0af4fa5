// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally implements the aggregation pipeline: raw vote records in,
classified per-location aggregates out.

# Pipeline

	records --Aggregate--> aggregates --Filter--> visible set
	                                      |
	                             StatsFor / Summarize
	                                      |
	                               Classify / Legend

Every stage is a pure function over its inputs; nothing here owns state
or touches the database. The simulated live stream is the one mutation
source in the system and it is modeled the same way: Perturb is a pure
reducer from one aggregate snapshot to the next, driven externally by the
live package.

# Ordering

All tallies are ordered by first encounter and every tie (winning party,
top-N leaderboards) resolves to the earlier-encountered name. Aggregation
over the same input is therefore fully deterministic.
*/
package tally
