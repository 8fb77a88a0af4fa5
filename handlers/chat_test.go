// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	_ "github.com/lib/pq"

	"github.com/DOMINUSBABEL/VOTOFLOW/assistant"
	"github.com/DOMINUSBABEL/VOTOFLOW/models"
	"github.com/DOMINUSBABEL/VOTOFLOW/testutil"
)

// stubAssistant records calls and returns canned replies.
type stubAssistant struct {
	mu          sync.Mutex
	primed      map[string]assistant.DatasetContext
	primeErr    error
	sendErr     error
	reply       assistant.Reply
	forgetCalls []string
}

func newStubAssistant() *stubAssistant {
	return &stubAssistant{
		primed: make(map[string]assistant.DatasetContext),
		reply:  assistant.Reply{Text: "canned reply"},
	}
}

func (s *stubAssistant) Prime(ctx context.Context, dc assistant.DatasetContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.primeErr != nil {
		return s.primeErr
	}
	s.primed[dc.DatasetID] = dc
	return nil
}

func (s *stubAssistant) Send(ctx context.Context, datasetID, message string) (assistant.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return assistant.Reply{}, s.sendErr
	}
	if _, ok := s.primed[datasetID]; !ok {
		return assistant.Reply{}, assistant.ErrNoSession
	}
	return s.reply, nil
}

func (s *stubAssistant) Forget(datasetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.primed, datasetID)
	s.forgetCalls = append(s.forgetCalls, datasetID)
}

func TestChatMessage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	svc := newStubAssistant()
	svc.reply = assistant.Reply{
		Text: "Mesa 2 leads with 200 votes.",
		Citations: []models.Citation{
			{Title: "Registraduría", URI: "https://example.org/boletin"},
		},
	}
	handler := NewChatHandler(db, cfg, newTestHub(), svc)

	datasetID := testutil.CreateTestDataset(t, db, "Consulta", testutil.SampleBatch())

	req := testutil.MakeRequest("POST", "/datasets/"+datasetID+"/chat", models.ChatRequest{
		Message: "Which location leads?",
	}, nil)
	req.SetPathValue("id", datasetID)
	w := httptest.NewRecorder()

	handler.Message(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ChatResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Fallback {
		t.Error("Did not expect a fallback reply")
	}
	if resp.Reply != "Mesa 2 leads with 200 votes." {
		t.Errorf("Unexpected reply: %s", resp.Reply)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].URI != "https://example.org/boletin" {
		t.Errorf("Unexpected citations: %+v", resp.Citations)
	}

	// First message primes the session with the aggregate context
	dc, ok := svc.primed[datasetID]
	if !ok {
		t.Fatal("Expected the session to be primed")
	}
	if dc.DatasetName != "Consulta" {
		t.Errorf("Expected dataset name 'Consulta', got '%s'", dc.DatasetName)
	}
	if len(dc.Locations) != 3 {
		t.Errorf("Expected 3 aggregated locations in context, got %d", len(dc.Locations))
	}
}

func TestChatMessageWithCoordinates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	svc := newStubAssistant()
	handler := NewChatHandler(db, cfg, newTestHub(), svc)

	datasetID := testutil.CreateTestDataset(t, db, "Consulta", testutil.SampleBatch())

	lat, lng := 4.65, -74.05
	req := testutil.MakeRequest("POST", "/datasets/"+datasetID+"/chat", models.ChatRequest{
		Message:   "What is near me?",
		Latitude:  &lat,
		Longitude: &lng,
	}, nil)
	req.SetPathValue("id", datasetID)
	w := httptest.NewRecorder()

	handler.Message(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	dc := svc.primed[datasetID]
	if dc.UserLat == nil || *dc.UserLat != lat {
		t.Error("Expected operator latitude in the primed context")
	}
	if dc.UserLng == nil || *dc.UserLng != lng {
		t.Error("Expected operator longitude in the primed context")
	}
}

func TestChatMessageValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg, newTestHub(), newStubAssistant())

	datasetID := testutil.CreateTestDataset(t, db, "Consulta", testutil.SampleBatch())

	tests := []struct {
		name           string
		datasetID      string
		body           interface{}
		expectedStatus int
	}{
		{"empty message", datasetID, models.ChatRequest{Message: ""}, http.StatusBadRequest},
		{"invalid JSON", datasetID, "not json", http.StatusBadRequest},
		{"missing dataset", "nonexistent", models.ChatRequest{Message: "hi"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/datasets/"+tt.datasetID+"/chat", tt.body, nil)
			req.Header.Set("Content-Type", "application/json")
			req.SetPathValue("id", tt.datasetID)
			w := httptest.NewRecorder()

			handler.Message(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestChatFallbacks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	datasetID := testutil.CreateTestDataset(t, db, "Consulta", testutil.SampleBatch())

	tests := []struct {
		name string
		svc  func() assistant.Service
	}{
		{
			name: "unconfigured assistant",
			svc:  func() assistant.Service { return nil },
		},
		{
			name: "priming failure",
			svc: func() assistant.Service {
				s := newStubAssistant()
				s.primeErr = errors.New("upstream unavailable")
				return s
			},
		},
		{
			name: "send failure",
			svc: func() assistant.Service {
				s := newStubAssistant()
				s.sendErr = errors.New("deadline exceeded")
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewChatHandler(db, cfg, newTestHub(), tt.svc())

			req := testutil.MakeRequest("POST", "/datasets/"+datasetID+"/chat", models.ChatRequest{
				Message: "hello",
			}, nil)
			req.SetPathValue("id", datasetID)
			w := httptest.NewRecorder()

			handler.Message(w, req)

			// Assistant failures are never surfaced as HTTP errors.
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.ChatResponse
			testutil.AssertJSON(t, w, &resp)
			if !resp.Fallback {
				t.Error("Expected fallback=true")
			}
			if resp.Reply != assistant.FallbackMessage {
				t.Errorf("Expected the fallback message, got: %s", resp.Reply)
			}
		})
	}
}

func TestChatSessionLossTriggersReprime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	svc := newStubAssistant()
	handler := NewChatHandler(db, cfg, newTestHub(), svc)

	datasetID := testutil.CreateTestDataset(t, db, "Consulta", testutil.SampleBatch())

	send := func() *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/datasets/"+datasetID+"/chat", models.ChatRequest{
			Message: "hello",
		}, nil)
		req.SetPathValue("id", datasetID)
		w := httptest.NewRecorder()
		handler.Message(w, req)
		return w
	}

	// Prime a session, then drop it behind the handler's back.
	testutil.AssertStatus(t, send(), http.StatusOK)
	svc.Forget(datasetID)

	// The stale turn falls back...
	w := send()
	var resp models.ChatResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Fallback {
		t.Error("Expected a fallback when the session is gone")
	}

	// ...and the next one re-primes and succeeds.
	w = send()
	testutil.AssertJSON(t, w, &resp)
	if resp.Fallback {
		t.Error("Expected a fresh session on the following turn")
	}
}

func TestChatReset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	svc := newStubAssistant()
	handler := NewChatHandler(db, cfg, newTestHub(), svc)

	datasetID := testutil.CreateTestDataset(t, db, "Consulta", testutil.SampleBatch())

	// Prime via a first message
	req := testutil.MakeRequest("POST", "/datasets/"+datasetID+"/chat", models.ChatRequest{Message: "hi"}, nil)
	req.SetPathValue("id", datasetID)
	w := httptest.NewRecorder()
	handler.Message(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("POST", "/datasets/"+datasetID+"/chat/reset", nil, nil)
	req.SetPathValue("id", datasetID)
	w = httptest.NewRecorder()
	handler.Reset(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if len(svc.forgetCalls) != 1 || svc.forgetCalls[0] != datasetID {
		t.Errorf("Expected one Forget call for the dataset, got %v", svc.forgetCalls)
	}
}
