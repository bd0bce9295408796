package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/interfaces"
)

type fakeSlotLister struct {
	slots []interfaces.Slot
	err   error
}

func (f *fakeSlotLister) List(ctx context.Context) ([]interfaces.Slot, error) {
	return f.slots, f.err
}

func TestGetStatusHandlerReportsSlots(t *testing.T) {
	now := time.Now()
	lister := &fakeSlotLister{slots: []interfaces.Slot{
		{Name: "ai-image-history", Value: "[]", CreatedAt: now, UpdatedAt: now},
		{Name: "user", Value: "secret", CreatedAt: now, UpdatedAt: now},
	}}
	handler := NewStatusHandler(lister, arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatusHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	storage, ok := body["storage"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected storage object in response, got %v", body)
	}
	if count, _ := storage["slot_count"].(float64); int(count) != 2 {
		t.Errorf("Expected slot_count 2, got %v", storage["slot_count"])
	}

	slots, ok := storage["slots"].([]interface{})
	if !ok || len(slots) != 2 {
		t.Fatalf("Expected 2 slot summaries, got %v", storage["slots"])
	}
	for _, raw := range slots {
		summary := raw.(map[string]interface{})
		if _, exposed := summary["value"]; exposed {
			t.Errorf("Slot summary must not expose the stored value: %v", summary)
		}
	}
	first := slots[0].(map[string]interface{})
	if first["name"] != "ai-image-history" {
		t.Errorf("Expected first slot name ai-image-history, got %v", first["name"])
	}
}

func TestGetStatusHandlerStorageError(t *testing.T) {
	handler := NewStatusHandler(&fakeSlotLister{err: errors.New("db closed")}, arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatusHandler(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
}

func TestGetStatusHandlerRejectsPost(t *testing.T) {
	handler := NewStatusHandler(&fakeSlotLister{}, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/status", nil)
	rec := httptest.NewRecorder()
	handler.GetStatusHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}
