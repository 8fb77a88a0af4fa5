// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/DOMINUSBABEL/VOTOFLOW/models"

// Aggregate groups raw vote records by polling location and produces one
// LocationData per unique (name, parent) key.
//
// Output order is the first-encounter order of each location key, and the
// party/candidate tallies inside each aggregate are likewise ordered by
// first encounter. That ordering is the documented tie-break for
// WinningParty and for every top-N computation downstream: on equal vote
// counts the earlier-encountered name wins.
//
// Coordinates are taken from the first record of each group. An empty
// input yields an empty output, not an error.
func Aggregate(records []models.VoteRecord) []models.LocationData {
	index := make(map[string]int, len(records))
	out := make([]models.LocationData, 0, len(records))

	for _, rec := range records {
		key := rec.Location + "\x1f" + rec.Parent
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, models.LocationData{
				Name:      rec.Location,
				Parent:    rec.Parent,
				Latitude:  rec.Latitude,
				Longitude: rec.Longitude,
			})
		}

		loc := &out[i]
		loc.TotalVotes += rec.Votes
		loc.Parties = bump(loc.Parties, rec.Party, rec.Votes)
		loc.Candidates = bump(loc.Candidates, rec.Candidate, rec.Votes)
	}

	for i := range out {
		out[i].WinningParty = winner(out[i].Parties)
	}

	return out
}

// bump adds votes to the tally entry for name, appending a new entry the
// first time the name is seen.
func bump(list models.CountList, name string, votes int) models.CountList {
	for i := range list {
		if list[i].Name == name {
			list[i].Votes += votes
			return list
		}
	}
	return append(list, models.Count{Name: name, Votes: votes})
}

// winner returns the name holding the strict maximum of the tally,
// scanning in insertion order so ties resolve to the first-encountered
// entry. Empty tallies yield "".
func winner(list models.CountList) string {
	best := ""
	bestVotes := -1
	for _, e := range list {
		if e.Votes > bestVotes {
			best = e.Name
			bestVotes = e.Votes
		}
	}
	return best
}
