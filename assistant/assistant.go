// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

// FallbackMessage is surfaced in the transcript when the assistant is
// unavailable or a request fails, instead of leaving the composing
// indicator stuck.
const FallbackMessage = "The electoral assistant is temporarily unavailable. " +
	"The map, filters, and audit view keep working; please try again in a moment."

var ErrNoSession = errors.New("no assistant session for dataset")

// Reply is one assistant turn: text plus optional citation chunks.
type Reply struct {
	Text      string
	Citations []models.Citation
}

// Service is the conversational collaborator the chat handlers talk to.
// The production implementation is Gemini; tests use a stub.
type Service interface {
	// Prime resets the dataset's session and seeds it with the aggregate
	// context. Called on first contact and whenever the aggregate set or
	// the operator location changes.
	Prime(ctx context.Context, dc DatasetContext) error
	// Send relays one operator message and returns the assistant turn.
	Send(ctx context.Context, datasetID, message string) (Reply, error)
	// Forget drops the dataset's session, if any.
	Forget(datasetID string)
}

// Gemini implements Service on the Gemini API with Google Search
// grounding, so replies can carry web citations.
type Gemini struct {
	client *genai.Client
	model  string

	mu    sync.Mutex
	chats map[string]*chatSession
}

type chatSession struct {
	mu   sync.Mutex // serializes turns: one outstanding request per session
	chat *genai.Chat
}

// NewGemini creates the Gemini-backed assistant.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("assistant API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		chats:  make(map[string]*chatSession),
	}, nil
}

// Prime replaces the dataset's chat session with a fresh one whose
// system instruction summarizes the aggregate set.
func (g *Gemini) Prime(ctx context.Context, dc DatasetContext) error {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: SystemPrompt(dc)}},
		},
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		Temperature: genai.Ptr[float32](0.4),
	}

	chat, err := g.client.Chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return fmt.Errorf("failed to create chat session: %w", err)
	}

	g.mu.Lock()
	g.chats[dc.DatasetID] = &chatSession{chat: chat}
	g.mu.Unlock()

	slog.Info("assistant session primed",
		"dataset_id", dc.DatasetID,
		"locations", len(dc.Locations),
	)
	return nil
}

// Send relays one message on the dataset's session. Turns on the same
// session are serialized.
func (g *Gemini) Send(ctx context.Context, datasetID, message string) (Reply, error) {
	g.mu.Lock()
	s, ok := g.chats[datasetID]
	g.mu.Unlock()
	if !ok {
		return Reply{}, ErrNoSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return Reply{}, fmt.Errorf("assistant request failed: %w", err)
	}

	return Reply{
		Text:      resp.Text(),
		Citations: extractCitations(resp),
	}, nil
}

// Forget drops the dataset's session.
func (g *Gemini) Forget(datasetID string) {
	g.mu.Lock()
	delete(g.chats, datasetID)
	g.mu.Unlock()
}

// extractCitations pulls grounding chunks (title + URI) out of the
// response, when the model consulted the web.
func extractCitations(resp *genai.GenerateContentResponse) []models.Citation {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return nil
	}

	var citations []models.Citation
	for _, chunk := range gm.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		citations = append(citations, models.Citation{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return citations
}
