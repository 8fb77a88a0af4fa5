// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math/rand"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

// Default live-stream tuning.
const (
	DefaultTickProb     = 0.3
	DefaultMaxIncrement = 40
)

// Perturb is the pure reducer behind the simulated live stream: each
// location independently receives, with probability prob, a random vote
// increment in [1, maxIncrement]. It returns a fresh slice and never
// mutates its input; totals never decrease and the set of location keys
// is unchanged.
//
// The increment is credited to the location's winning party and to its
// leading candidate, then the winning party is recomputed, so the
// TotalVotes == sum(parties) == sum(candidates) invariant holds on every
// tick.
func Perturb(locs []models.LocationData, rng *rand.Rand, prob float64, maxIncrement int) []models.LocationData {
	if maxIncrement < 1 {
		maxIncrement = 1
	}

	out := make([]models.LocationData, len(locs))
	for i, loc := range locs {
		next := loc
		next.Parties = loc.Parties.Clone()
		next.Candidates = loc.Candidates.Clone()

		if rng.Float64() < prob {
			inc := rng.Intn(maxIncrement) + 1
			next.TotalVotes += inc
			next.Parties = credit(next.Parties, next.WinningParty, inc)
			next.Candidates = credit(next.Candidates, leader(next.Candidates), inc)
			next.WinningParty = winner(next.Parties)
		}

		out[i] = next
	}
	return out
}

// credit adds votes to the named tally entry in place, appending when the
// tally is empty or the name is missing.
func credit(list models.CountList, name string, votes int) models.CountList {
	if name == "" {
		return list
	}
	for i := range list {
		if list[i].Name == name {
			list[i].Votes += votes
			return list
		}
	}
	return append(list, models.Count{Name: name, Votes: votes})
}

// leader returns the name with the highest count, first-encountered on
// ties, or "" for an empty tally.
func leader(list models.CountList) string {
	return winner(list)
}
