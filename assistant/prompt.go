// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"fmt"
	"strings"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/tally"
)

// DatasetContext is the aggregate context a session is primed with.
type DatasetContext struct {
	DatasetID   string
	DatasetName string
	Locations   []models.LocationData
	UserLat     *float64
	UserLng     *float64
}

// SystemPrompt renders the system instruction for a session: dataset
// shape, leaderboards, and the locations the audit view currently flags.
// Pure, so it is unit-testable without the API.
func SystemPrompt(dc DatasetContext) string {
	var b strings.Builder

	b.WriteString("You are the audit assistant of an electoral results dashboard. ")
	b.WriteString("Operators ask you about vote distributions, dominant parties, and possible anomalies. ")
	b.WriteString("Be concise and factual; when you rely on web sources, cite them.\n\n")

	fmt.Fprintf(&b, "Dataset: %q with %d polling locations.\n", dc.DatasetName, len(dc.Locations))

	if len(dc.Locations) == 0 {
		b.WriteString("No vote records are loaded yet.\n")
		return b.String()
	}

	stats := tally.StatsFor(dc.Locations)
	fmt.Fprintf(&b, "Total votes: %d. Max per location: %d. Average per location: %.1f.\n",
		sumTotals(dc.Locations), stats.MaxVotes, stats.AvgVotes)

	sum := tally.Summarize(dc.Locations, models.FilterState{})
	b.WriteString("Leading parties: ")
	b.WriteString(renderCounts(sum.TopParties))
	b.WriteString(".\nLeading candidates: ")
	b.WriteString(renderCounts(sum.TopCandidates))
	b.WriteString(".\n")

	if anomalies := anomalousNames(dc.Locations, stats); len(anomalies) > 0 {
		fmt.Fprintf(&b, "Audit view currently flags %d location(s) above %.1fx the average: %s.\n",
			len(anomalies), tally.AnomalyFactor, strings.Join(anomalies, "; "))
	} else {
		b.WriteString("Audit view currently flags no anomalous locations.\n")
	}

	if dc.UserLat != nil && dc.UserLng != nil {
		fmt.Fprintf(&b, "The operator is located near %.4f, %.4f.\n", *dc.UserLat, *dc.UserLng)
	}

	return b.String()
}

func sumTotals(locs []models.LocationData) int {
	total := 0
	for _, loc := range locs {
		total += loc.TotalVotes
	}
	return total
}

func renderCounts(list models.CountList) string {
	if len(list) == 0 {
		return "none"
	}
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = fmt.Sprintf("%s (%d)", e.Name, e.Votes)
	}
	return strings.Join(parts, ", ")
}

func anomalousNames(locs []models.LocationData, stats models.ViewStats) []string {
	var names []string
	for _, loc := range locs {
		if tally.Anomalous(loc, stats) {
			names = append(names, fmt.Sprintf("%s (%s, %d votes)", loc.Name, loc.Parent, loc.TotalVotes))
		}
	}
	return names
}
