// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math"
	"sort"
	"strings"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

// AnomalyFactor is the audit threshold: a location is anomalous when its
// total exceeds the visible-set average times this factor.
const AnomalyFactor = 1.8

// Heat color ramp, darkest first. Band edges are ratios of the visible
// maximum: >0.8, >0.6, >0.4, >0.2, else the lightest band.
var heatRamp = [5]string{"#7f1d1d", "#b91c1c", "#ef4444", "#f97316", "#facc15"}

const (
	auditAlertColor = "#e11d48"
	auditCalmColor  = "#94a3b8"
	partyFallback   = "#64748b"
)

// partyColors maps canonical party tokens to marker colors. Lookup is an
// exact match on the accent-folded, lowercased significant token of the
// party name, with a containment scan as fallback for compound names.
var partyColors = map[string]string{
	"pacto":        "#7c3aed",
	"historico":    "#7c3aed",
	"centro":       "#1d4ed8",
	"democratico":  "#1d4ed8",
	"liberal":      "#dc2626",
	"conservador":  "#1e3a8a",
	"verde":        "#16a34a",
	"radical":      "#0ea5e9",
	"cambio":       "#0ea5e9",
	"polo":         "#eab308",
	"union":        "#ea580c",
	"u":            "#ea580c",
	"mira":         "#0d9488",
	"independiente": "#6b7280",
}

// partyColorKeys fixes the containment scan order: longest key first so
// the most specific token wins, ties alphabetical. Ranging over the map
// would make the fallback depend on iteration order.
var partyColorKeys = func() []string {
	keys := make([]string, 0, len(partyColors))
	for k := range partyColors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// Classify computes the visual attributes of one location under the given
// view mode and visible-set statistics. Pure: identical inputs yield
// identical outputs and the location is never mutated.
func Classify(loc models.LocationData, mode string, stats models.ViewStats) models.MarkerStyle {
	switch mode {
	case models.ModeParty:
		return models.MarkerStyle{
			Radius:    9,
			Color:     PartyColor(loc.WinningParty),
			Opacity:   0.8,
			Emphasize: false,
		}
	case models.ModeAudit:
		if Anomalous(loc, stats) {
			return models.MarkerStyle{
				Radius:    18,
				Color:     auditAlertColor,
				Opacity:   0.9,
				Emphasize: true,
			}
		}
		return models.MarkerStyle{
			Radius:    6,
			Color:     auditCalmColor,
			Opacity:   0.45,
			Emphasize: false,
		}
	default: // heat
		return models.MarkerStyle{
			Radius:    heatRadius(loc.TotalVotes),
			Color:     heatColor(loc.TotalVotes, stats.MaxVotes),
			Opacity:   0.55,
			Emphasize: false,
		}
	}
}

// Anomalous reports whether the location trips the audit threshold
// against the visible-set average.
func Anomalous(loc models.LocationData, stats models.ViewStats) bool {
	return float64(loc.TotalVotes) > stats.AvgVotes*AnomalyFactor
}

// PartyColor resolves a party name to its marker color, falling back to a
// neutral color when no table entry matches.
func PartyColor(party string) string {
	token := canonicalToken(party)
	if color, ok := partyColors[token]; ok {
		return color
	}
	folded := foldName(party)
	for _, key := range partyColorKeys {
		// Single-letter keys ("u") are too promiscuous for containment.
		if len(key) > 1 && strings.Contains(folded, key) {
			return partyColors[key]
		}
	}
	return partyFallback
}

// Legend returns the legend entries for the active view mode. Party mode
// lists the winning parties present in the visible set, first-seen order.
func Legend(mode string, visible []models.LocationData) []models.LegendEntry {
	switch mode {
	case models.ModeParty:
		var entries []models.LegendEntry
		seen := make(map[string]bool)
		for _, loc := range visible {
			if loc.WinningParty == "" || seen[loc.WinningParty] {
				continue
			}
			seen[loc.WinningParty] = true
			entries = append(entries, models.LegendEntry{
				Label: loc.WinningParty,
				Color: PartyColor(loc.WinningParty),
			})
		}
		return entries
	case models.ModeAudit:
		return []models.LegendEntry{
			{Label: "Anomalous (> 1.8x average)", Color: auditAlertColor},
			{Label: "Within expected range", Color: auditCalmColor},
		}
	default:
		labels := [5]string{"> 80% of max", "> 60%", "> 40%", "> 20%", "<= 20%"}
		entries := make([]models.LegendEntry, len(heatRamp))
		for i, color := range heatRamp {
			entries[i] = models.LegendEntry{Label: labels[i], Color: color}
		}
		return entries
	}
}

func heatRadius(votes int) float64 {
	r := math.Sqrt(float64(votes)) * 0.6
	if r < 5 {
		return 5
	}
	if r > 28 {
		return 28
	}
	return r
}

func heatColor(votes, max int) string {
	if max <= 0 {
		return heatRamp[4]
	}
	ratio := float64(votes) / float64(max)
	switch {
	case ratio > 0.8:
		return heatRamp[0]
	case ratio > 0.6:
		return heatRamp[1]
	case ratio > 0.4:
		return heatRamp[2]
	case ratio > 0.2:
		return heatRamp[3]
	default:
		return heatRamp[4]
	}
}

// canonicalToken extracts the lookup token from a party name: the longest
// accent-folded word that is not a filler like "partido" or "de".
func canonicalToken(party string) string {
	filler := map[string]bool{
		"partido": true, "movimiento": true, "coalicion": true,
		"de": true, "del": true, "la": true, "el": true, "los": true,
		"por": true, "y": true,
	}
	best := ""
	for _, word := range strings.Fields(foldName(party)) {
		if filler[word] {
			continue
		}
		if len(word) > len(best) {
			best = word
		}
	}
	return best
}

var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ü", "u", "Ñ", "n",
)

func foldName(s string) string {
	return strings.ToLower(accentFolder.Replace(s))
}
