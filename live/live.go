// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/tally"
)

var (
	ErrAlreadyRunning = errors.New("live stream already running for dataset")
	ErrNotRunning     = errors.New("no live stream running for dataset")
)

// Hub owns the simulated live streams, one session per dataset. Each
// session holds the current aggregate snapshot and advances it through
// the pure tally.Perturb reducer on every tick; readers always get a
// consistent snapshot, never a half-applied tick.
type Hub struct {
	interval     time.Duration
	prob         float64
	maxIncrement int

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	snapshot []models.LocationData
	ticks    int
	rng      *rand.Rand
	stop     chan struct{}
	done     chan struct{}
}

// NewHub creates a hub with the given tick interval and perturbation
// tuning.
func NewHub(interval time.Duration, prob float64, maxIncrement int) *Hub {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Hub{
		interval:     interval,
		prob:         prob,
		maxIncrement: maxIncrement,
		sessions:     make(map[string]*session),
	}
}

// Start begins a live session for the dataset, seeded with its current
// aggregate snapshot.
func (h *Hub) Start(datasetID string, locs []models.LocationData) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, running := h.sessions[datasetID]; running {
		return ErrAlreadyRunning
	}

	s := &session{
		snapshot: locs,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	h.sessions[datasetID] = s

	go h.run(datasetID, s)

	slog.Info("live stream started", "dataset_id", datasetID, "locations", len(locs))
	return nil
}

// Stop ends the dataset's live session. The perturbed snapshot is
// discarded; the next read recomputes from stored records.
func (h *Hub) Stop(datasetID string) error {
	h.mu.Lock()
	s, running := h.sessions[datasetID]
	if running {
		delete(h.sessions, datasetID)
	}
	h.mu.Unlock()

	if !running {
		return ErrNotRunning
	}

	close(s.stop)
	<-s.done

	slog.Info("live stream stopped", "dataset_id", datasetID)
	return nil
}

// Snapshot returns the dataset's current perturbed aggregate, or false
// when no session is running.
func (h *Hub) Snapshot(datasetID string) ([]models.LocationData, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, running := h.sessions[datasetID]
	if !running {
		return nil, false
	}
	return s.snapshot, true
}

// Status reports whether a session is running and how many ticks it has
// applied.
func (h *Hub) Status(datasetID string) (running bool, ticks int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[datasetID]
	if !ok {
		return false, 0
	}
	return true, s.ticks
}

// Shutdown stops every running session.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		_ = h.Stop(id)
	}
}

func (h *Hub) run(datasetID string, s *session) {
	defer close(s.done)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			h.tick(datasetID, s)
		}
	}
}

// tick advances the session snapshot by one reducer application. The
// reducer returns a fresh slice, so readers holding the old snapshot
// stay valid.
func (h *Hub) tick(datasetID string, s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Session may have been stopped between the ticker firing and the
	// lock being acquired.
	if current, ok := h.sessions[datasetID]; !ok || current != s {
		return
	}

	s.snapshot = tally.Perturb(s.snapshot, s.rng, h.prob, h.maxIncrement)
	s.ticks++
}
