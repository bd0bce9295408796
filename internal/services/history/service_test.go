package history

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/interfaces"
	"github.com/ternarybob/imaginai/internal/models"
)

// memorySlots is an in-memory SlotStorage fake for service tests
type memorySlots struct {
	data map[string]string
}

func newMemorySlots() *memorySlots {
	return &memorySlots{data: make(map[string]string)}
}

func (m *memorySlots) Get(ctx context.Context, name string) (string, error) {
	value, ok := m.data[name]
	if !ok {
		return "", interfaces.ErrSlotNotFound
	}
	return value, nil
}

func (m *memorySlots) Set(ctx context.Context, name, value string) error {
	m.data[name] = value
	return nil
}

func (m *memorySlots) Delete(ctx context.Context, name string) error {
	delete(m.data, name)
	return nil
}

func (m *memorySlots) List(ctx context.Context) ([]interfaces.Slot, error) {
	return nil, nil
}

func newTestService() (*Service, *memorySlots) {
	slots := newMemorySlots()
	return NewService(slots, arbor.NewLogger()), slots
}

func TestRecordAppendsInInsertionOrder(t *testing.T) {
	svc, slots := newTestService()
	ctx := context.Background()

	for _, prompt := range []string{"cat", "dog", "bird"} {
		entry, err := svc.Record(ctx, models.GeneratedImage{URL: "data:image/png;base64,x", Prompt: prompt})
		if err != nil {
			t.Fatalf("Record(%q) failed: %v", prompt, err)
		}
		if entry.ID == "" {
			t.Error("Recorded entry has empty id")
		}
		if entry.Prompt != prompt {
			t.Errorf("Recorded entry prompt = %q, want %q", entry.Prompt, prompt)
		}
	}

	// The persisted slot keeps insertion order
	var persisted []models.HistoryEntry
	if err := json.Unmarshal([]byte(slots.data[SlotHistory]), &persisted); err != nil {
		t.Fatalf("Persisted history is not valid JSON: %v", err)
	}
	if len(persisted) != 3 {
		t.Fatalf("Expected 3 persisted entries, got %d", len(persisted))
	}
	for i, want := range []string{"cat", "dog", "bird"} {
		if persisted[i].Prompt != want {
			t.Errorf("Persisted entry %d prompt = %q, want %q", i, persisted[i].Prompt, want)
		}
	}
}

func TestLoadAllReturnsMostRecentFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, prompt := range []string{"cat", "dog", "bird"} {
		if _, err := svc.Record(ctx, models.GeneratedImage{URL: "u", Prompt: prompt}); err != nil {
			t.Fatal(err)
		}
	}

	entries := svc.LoadAll(ctx)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"bird", "dog", "cat"} {
		if entries[i].Prompt != want {
			t.Errorf("LoadAll()[%d].Prompt = %q, want %q", i, entries[i].Prompt, want)
		}
	}
}

func TestLoadAllEmptyHistory(t *testing.T) {
	svc, _ := newTestService()

	entries := svc.LoadAll(context.Background())
	if len(entries) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(entries))
	}
}

func TestUndecodableHistoryTreatedAsEmpty(t *testing.T) {
	svc, slots := newTestService()
	ctx := context.Background()

	slots.Set(ctx, SlotHistory, "{corrupt")

	if entries := svc.LoadAll(ctx); len(entries) != 0 {
		t.Errorf("Expected empty history for corrupt slot, got %d entries", len(entries))
	}

	// Recording over a corrupt slot starts a fresh history
	if _, err := svc.Record(ctx, models.GeneratedImage{URL: "u", Prompt: "cat"}); err != nil {
		t.Fatalf("Record over corrupt slot failed: %v", err)
	}
	entries := svc.LoadAll(ctx)
	if len(entries) != 1 || entries[0].Prompt != "cat" {
		t.Errorf("Unexpected history after recording over corrupt slot: %+v", entries)
	}
}
