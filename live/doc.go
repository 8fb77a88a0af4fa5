// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package live runs the simulated live streams that stand in for a real
E-14-style feed.

A Hub owns at most one session per dataset. Each session seeds from the
dataset's aggregate snapshot and advances it on a fixed interval through
the pure tally.Perturb reducer: totals only ever grow, the location key
set never changes, and each tick produces a fresh snapshot rather than
mutating the one readers may still hold. Stopping a session discards the
perturbed state; subsequent reads recompute from the stored records.
*/
package live
