// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"reflect"
	"testing"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

func sampleRecords() []models.VoteRecord {
	return []models.VoteRecord{
		{Location: "Mesa 1", Parent: "Bogotá", Latitude: 4.60, Longitude: -74.08, Party: "Pacto Histórico", Candidate: "García", Votes: 120},
		{Location: "Mesa 1", Parent: "Bogotá", Latitude: 4.60, Longitude: -74.08, Party: "Centro Democrático", Candidate: "Rojas", Votes: 80},
		{Location: "Mesa 2", Parent: "Medellín", Latitude: 6.24, Longitude: -75.58, Party: "Centro Democrático", Candidate: "Rojas", Votes: 200},
		{Location: "Mesa 1", Parent: "Bogotá", Latitude: 4.60, Longitude: -74.08, Party: "Pacto Histórico", Candidate: "Mejía", Votes: 30},
		{Location: "Mesa 2", Parent: "Medellín", Latitude: 6.24, Longitude: -75.58, Party: "Partido Liberal", Candidate: "Torres", Votes: 50},
	}
}

func TestAggregateGroupsByLocation(t *testing.T) {
	locs := Aggregate(sampleRecords())

	if len(locs) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(locs))
	}

	// Output order follows first encounter of each key.
	if locs[0].Name != "Mesa 1" || locs[1].Name != "Mesa 2" {
		t.Errorf("Expected first-encounter order [Mesa 1, Mesa 2], got [%s, %s]", locs[0].Name, locs[1].Name)
	}

	mesa1 := locs[0]
	if mesa1.TotalVotes != 230 {
		t.Errorf("Expected Mesa 1 total 230, got %d", mesa1.TotalVotes)
	}
	if v, _ := mesa1.Parties.Get("Pacto Histórico"); v != 150 {
		t.Errorf("Expected Pacto Histórico 150 at Mesa 1, got %d", v)
	}
	if v, _ := mesa1.Candidates.Get("García"); v != 120 {
		t.Errorf("Expected García 120 at Mesa 1, got %d", v)
	}
	if mesa1.WinningParty != "Pacto Histórico" {
		t.Errorf("Expected Pacto Histórico to win Mesa 1, got %s", mesa1.WinningParty)
	}
	if mesa1.Latitude != 4.60 || mesa1.Longitude != -74.08 {
		t.Errorf("Expected Mesa 1 coordinates from first record, got %f,%f", mesa1.Latitude, mesa1.Longitude)
	}
}

// Property 1: aggregation conserves the total vote count.
func TestAggregateConservesVotes(t *testing.T) {
	records := sampleRecords()

	want := 0
	for _, r := range records {
		want += r.Votes
	}

	got := 0
	for _, loc := range Aggregate(records) {
		got += loc.TotalVotes
	}

	if got != want {
		t.Errorf("Expected aggregate total %d, got %d", want, got)
	}
}

// Property 2: TotalVotes matches both tally sums at every location.
func TestAggregateInvariant(t *testing.T) {
	for _, loc := range Aggregate(sampleRecords()) {
		if loc.TotalVotes != loc.Parties.Total() {
			t.Errorf("%s: TotalVotes %d != party sum %d", loc.Name, loc.TotalVotes, loc.Parties.Total())
		}
		if loc.TotalVotes != loc.Candidates.Total() {
			t.Errorf("%s: TotalVotes %d != candidate sum %d", loc.Name, loc.TotalVotes, loc.Candidates.Total())
		}
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	if locs := Aggregate(nil); len(locs) != 0 {
		t.Errorf("Expected empty output for empty input, got %d locations", len(locs))
	}
}

// Winning-party ties resolve to the first-encountered party.
func TestAggregateWinnerTieBreak(t *testing.T) {
	records := []models.VoteRecord{
		{Location: "Mesa 9", Parent: "Cali", Party: "Partido B", Candidate: "X", Votes: 40},
		{Location: "Mesa 9", Parent: "Cali", Party: "Partido A", Candidate: "Y", Votes: 40},
	}

	locs := Aggregate(records)
	if len(locs) != 1 {
		t.Fatalf("Expected 1 location, got %d", len(locs))
	}
	if locs[0].WinningParty != "Partido B" {
		t.Errorf("Expected tie to go to first-encountered Partido B, got %s", locs[0].WinningParty)
	}
}

// Same name under different parents stays distinct.
func TestAggregateParentDisambiguates(t *testing.T) {
	records := []models.VoteRecord{
		{Location: "Mesa 1", Parent: "Bogotá", Party: "A", Candidate: "X", Votes: 10},
		{Location: "Mesa 1", Parent: "Cali", Party: "A", Candidate: "X", Votes: 20},
	}

	if locs := Aggregate(records); len(locs) != 2 {
		t.Errorf("Expected 2 locations for same name under different parents, got %d", len(locs))
	}
}

// Property 8: re-running aggregation is deterministic.
func TestAggregateDeterministic(t *testing.T) {
	records := sampleRecords()
	first := Aggregate(records)
	second := Aggregate(records)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical aggregates across runs:\nfirst:  %v\nsecond: %v", first, second)
	}
}
