// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"sort"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

// TopN is the leaderboard depth reported by Summarize.
const TopN = 5

// Filter narrows the aggregate set to the locations satisfying every
// active predicate: a strictly positive tally for the selected party, a
// strictly positive tally for the selected candidate, and TotalVotes at
// or above the minimum. Each predicate is disabled by its sentinel
// (models.FilterAll or empty string; zero for MinVotes).
//
// Pure set intersection: input order is preserved, the input is never
// mutated, and Filter(Filter(s, f), f) == Filter(s, f).
func Filter(locs []models.LocationData, f models.FilterState) []models.LocationData {
	out := make([]models.LocationData, 0, len(locs))
	for _, loc := range locs {
		if loc.TotalVotes < f.MinVotes {
			continue
		}
		if f.PartyActive() {
			if v, ok := loc.Parties.Get(f.Party); !ok || v <= 0 {
				continue
			}
		}
		if f.CandidateActive() {
			if v, ok := loc.Candidates.Get(f.Candidate); !ok || v <= 0 {
				continue
			}
		}
		out = append(out, loc)
	}
	return out
}

// Summarize computes the top-5 party and candidate leaderboards over the
// passed-in set, which the caller has already filtered. When a specific
// party (or candidate) filter is active only that key contributes to its
// leaderboard: the roll-up counts what is visible, it does not re-filter.
//
// Leaderboards are sorted by votes descending; ties keep first-seen key
// order (the order keys first appear scanning locations in input order).
func Summarize(locs []models.LocationData, f models.FilterState) models.Summary {
	parties := rollUp(locs, f.Party, f.PartyActive(), partyTally)
	candidates := rollUp(locs, f.Candidate, f.CandidateActive(), candidateTally)
	return models.Summary{
		TopParties:    top(parties, TopN),
		TopCandidates: top(candidates, TopN),
	}
}

// StatsFor computes the visible-set statistics classification depends on.
// An empty set yields zero stats.
func StatsFor(locs []models.LocationData) models.ViewStats {
	if len(locs) == 0 {
		return models.ViewStats{}
	}
	max, sum := 0, 0
	for _, loc := range locs {
		if loc.TotalVotes > max {
			max = loc.TotalVotes
		}
		sum += loc.TotalVotes
	}
	return models.ViewStats{
		MaxVotes: max,
		AvgVotes: float64(sum) / float64(len(locs)),
	}
}

func partyTally(loc models.LocationData) models.CountList     { return loc.Parties }
func candidateTally(loc models.LocationData) models.CountList { return loc.Candidates }

// rollUp sums one tally dimension across locations in first-seen key
// order. With an active selection only the selected key contributes.
func rollUp(locs []models.LocationData, selected string, active bool, pick func(models.LocationData) models.CountList) models.CountList {
	var out models.CountList
	for _, loc := range locs {
		for _, e := range pick(loc) {
			if active && e.Name != selected {
				continue
			}
			out = bump(out, e.Name, e.Votes)
		}
	}
	return out
}

// top returns the n highest entries, votes descending, preserving
// first-seen order on equal votes.
func top(list models.CountList, n int) models.CountList {
	sorted := list.Clone()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Votes > sorted[j].Votes
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
