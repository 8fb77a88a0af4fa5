// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// View mode constants
const (
	ModeHeat  = "heat"
	ModeParty = "party"
	ModeAudit = "audit"
)

// FilterAll is the sentinel meaning "no constraint" for party and
// candidate filters.
const FilterAll = "all"

// Dataset source constants
const (
	SourceUpload = "upload"
	SourceSample = "sample"
)

// ValidMode reports whether m names one of the three view modes.
func ValidMode(m string) bool {
	return m == ModeHeat || m == ModeParty || m == ModeAudit
}

// Domain types

// VoteRecord is one row of raw input: the votes one candidate received at
// one polling location. Immutable once parsed.
type VoteRecord struct {
	Location  string  `json:"location"`
	Parent    string  `json:"parent"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Party     string  `json:"party"`
	Candidate string  `json:"candidate"`
	Votes     int     `json:"votes"`
}

// Count is one entry of an ordered tally: a name and its summed votes.
type Count struct {
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// CountList is a tally ordered by first encounter. Order matters: winning
// party and top-N computations break ties toward the earlier entry.
type CountList []Count

// Get returns the votes recorded under name.
func (c CountList) Get(name string) (int, bool) {
	for _, e := range c {
		if e.Name == name {
			return e.Votes, true
		}
	}
	return 0, false
}

// Total sums every entry.
func (c CountList) Total() int {
	total := 0
	for _, e := range c {
		total += e.Votes
	}
	return total
}

// Clone returns an independent copy.
func (c CountList) Clone() CountList {
	out := make(CountList, len(c))
	copy(out, c)
	return out
}

// LocationData is the aggregate for one polling location.
// Invariant: TotalVotes == Parties.Total() == Candidates.Total().
type LocationData struct {
	Name         string    `json:"name"`
	Parent       string    `json:"parent"`
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lng"`
	TotalVotes   int       `json:"total_votes"`
	Parties      CountList `json:"parties"`
	Candidates   CountList `json:"candidates"`
	WinningParty string    `json:"winning_party"`
}

// Key identifies a polling location: name plus parent administrative area.
func (l LocationData) Key() string {
	return l.Name + "\x1f" + l.Parent
}

// FilterState holds the operator-selected view constraints. The zero
// value of Party/Candidate is treated like FilterAll.
type FilterState struct {
	MinVotes  int    `json:"min_votes"`
	Party     string `json:"party"`
	Candidate string `json:"candidate"`
}

// PartyActive reports whether a specific party is selected.
func (f FilterState) PartyActive() bool {
	return f.Party != "" && f.Party != FilterAll
}

// CandidateActive reports whether a specific candidate is selected.
func (f FilterState) CandidateActive() bool {
	return f.Candidate != "" && f.Candidate != FilterAll
}

// MarkerStyle is the visual classification of one location under the
// current view mode.
type MarkerStyle struct {
	Radius    float64 `json:"radius"`
	Color     string  `json:"color"`
	Opacity   float64 `json:"opacity"`
	Emphasize bool    `json:"emphasize"`
}

// ViewStats are the statistics of the currently visible (post-filter)
// set that classification depends on.
type ViewStats struct {
	MaxVotes int     `json:"max_votes"`
	AvgVotes float64 `json:"avg_votes"`
}

// Summary holds the top-5 leaderboards over the visible set.
type Summary struct {
	TopParties    CountList `json:"top_parties"`
	TopCandidates CountList `json:"top_candidates"`
}

// LegendEntry is one row of the map legend for the active view mode.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Dataset is the metadata of one stored batch of vote records.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	RecordCount int       `json:"record_count"`
	DroppedRows int       `json:"dropped_rows"`
	CreatedAt   time.Time `json:"created_at"`
}

// Request types

type ChatRequest struct {
	Message   string   `json:"message"`
	Latitude  *float64 `json:"lat,omitempty"`
	Longitude *float64 `json:"lng,omitempty"`
}

// Response types

type UploadResponse struct {
	DatasetID   string `json:"dataset_id"`
	AdminKey    string `json:"admin_key"`
	RecordCount int    `json:"record_count"`
	DroppedRows int    `json:"dropped_rows"`
	Locations   int    `json:"locations"`
}

// Marker is one classified location ready for the map renderer.
type Marker struct {
	LocationData
	Style MarkerStyle `json:"style"`
	Label string      `json:"label"`
}

type LocationsResponse struct {
	Mode      string        `json:"mode"`
	Live      bool          `json:"live"`
	Markers   []Marker      `json:"markers"`
	Stats     ViewStats     `json:"stats"`
	Summary   Summary       `json:"summary"`
	Legend    []LegendEntry `json:"legend"`
	Anomalies int           `json:"anomalies"`
}

type LiveStatusResponse struct {
	Running bool `json:"running"`
	Ticks   int  `json:"ticks"`
}

type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type ChatResponse struct {
	Reply     string     `json:"reply"`
	Citations []Citation `json:"citations,omitempty"`
	Fallback  bool       `json:"fallback"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
