package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/models"
	"github.com/ternarybob/imaginai/internal/services/generator"
)

// fakeGenerator returns a canned result or error, optionally blocking
// until released to exercise the in-flight guard.
type fakeGenerator struct {
	image   *models.GeneratedImage
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (*models.GeneratedImage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, generator.ErrEmptyPrompt
	}
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.image, nil
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, image models.GeneratedImage) (*models.HistoryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := models.HistoryEntry{ID: "1", URL: image.URL, Prompt: image.Prompt, Timestamp: time.Now()}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeBroadcaster) BroadcastEvent(eventType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
}

func (f *fakeBroadcaster) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

type activeSession struct{}

func (activeSession) IsAuthenticated(ctx context.Context) bool { return true }

type noSession struct{}

func (noSession) IsAuthenticated(ctx context.Context) bool { return false }

func TestGenerateImageHandlerSuccess(t *testing.T) {
	gen := &fakeGenerator{image: &models.GeneratedImage{URL: "https://example.com/cat.png", Prompt: "a cat"}}
	recorder := &fakeRecorder{}
	broadcaster := &fakeBroadcaster{}
	handler := NewGenerateHandler(gen, recorder, activeSession{}, broadcaster, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"a cat"}`))
	rec := httptest.NewRecorder()
	handler.GenerateImageHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(recorder.entries) != 1 {
		t.Errorf("Expected 1 recorded entry, got %d", len(recorder.entries))
	}

	events := broadcaster.eventTypes()
	if len(events) != 2 || events[0] != "generation_started" || events[1] != "generation_completed" {
		t.Errorf("Expected started+completed events, got %v", events)
	}
}

func TestGenerateImageHandlerEmptyPrompt(t *testing.T) {
	broadcaster := &fakeBroadcaster{}
	handler := NewGenerateHandler(&fakeGenerator{}, &fakeRecorder{}, activeSession{}, broadcaster, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"   "}`))
	rec := httptest.NewRecorder()
	handler.GenerateImageHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	// A blank submission must not emit any generation events
	if events := broadcaster.eventTypes(); len(events) != 0 {
		t.Errorf("Expected no events for an empty prompt, got %v", events)
	}
}

func TestGenerateImageHandlerRequiresSession(t *testing.T) {
	gen := &fakeGenerator{image: &models.GeneratedImage{URL: "x", Prompt: "y"}}
	handler := NewGenerateHandler(gen, &fakeRecorder{}, noSession{}, &fakeBroadcaster{}, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"a cat"}`))
	rec := httptest.NewRecorder()
	handler.GenerateImageHandler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGenerateImageHandlerUpstreamFailure(t *testing.T) {
	gen := &fakeGenerator{err: &generator.GenerationError{StatusCode: 500, Message: "upstream down"}}
	broadcaster := &fakeBroadcaster{}
	handler := NewGenerateHandler(gen, &fakeRecorder{}, activeSession{}, broadcaster, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"a cat"}`))
	rec := httptest.NewRecorder()
	handler.GenerateImageHandler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Expected status 502, got %d", rec.Code)
	}

	events := broadcaster.eventTypes()
	if len(events) != 2 || events[1] != "generation_failed" {
		t.Errorf("Expected failure event, got %v", events)
	}
}

func TestGenerateImageHandlerRejectsConcurrentRequests(t *testing.T) {
	gen := &fakeGenerator{
		image:   &models.GeneratedImage{URL: "https://example.com/slow.png", Prompt: "slow"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	handler := NewGenerateHandler(gen, &fakeRecorder{}, activeSession{}, &fakeBroadcaster{}, arbor.NewLogger())

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"slow"}`))
		handler.GenerateImageHandler(httptest.NewRecorder(), req)
	}()

	<-gen.started

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"second"}`))
	rec := httptest.NewRecorder()
	handler.GenerateImageHandler(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409 while generation in flight, got %d", rec.Code)
	}

	close(gen.release)
	<-firstDone
}

func TestGenerateImageHandlerHistoryFailureStillReturnsImage(t *testing.T) {
	gen := &fakeGenerator{image: &models.GeneratedImage{URL: "https://example.com/cat.png", Prompt: "a cat"}}
	recorder := &fakeRecorder{err: context.DeadlineExceeded}
	handler := NewGenerateHandler(gen, recorder, activeSession{}, &fakeBroadcaster{}, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(`{"prompt":"a cat"}`))
	rec := httptest.NewRecorder()
	handler.GenerateImageHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 despite history failure, got %d", rec.Code)
	}
}
