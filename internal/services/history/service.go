package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/interfaces"
	"github.com/ternarybob/imaginai/internal/models"
)

// SlotHistory holds the generation history as a JSON array in insertion
// order. The slot is unbounded; entries are never updated or individually
// deleted.
const SlotHistory = "ai-image-history"

// Service records successful generations and loads them for display.
//
// Every write is a full read-decode-append-encode-write of the slot. That
// is O(n) per record, acceptable because history is bounded by one user's
// lifetime usage; it is explicitly not designed to scale.
type Service struct {
	slots  interfaces.SlotStorage
	logger arbor.ILogger
}

// NewService creates a new history service backed by the given slot storage
func NewService(slots interfaces.SlotStorage, logger arbor.ILogger) *Service {
	return &Service{
		slots:  slots,
		logger: logger,
	}
}

// Record appends one successful generation to the persisted history and
// returns the stamped entry. The entry id is derived from the creation
// time in unix milliseconds.
func (s *Service) Record(ctx context.Context, image models.GeneratedImage) (*models.HistoryEntry, error) {
	entries := s.load(ctx)

	now := time.Now()
	entry := models.HistoryEntry{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		URL:       image.URL,
		Prompt:    image.Prompt,
		Timestamp: now,
	}
	entries = append(entries, entry)

	encoded, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}

	if err := s.slots.Set(ctx, SlotHistory, string(encoded)); err != nil {
		return nil, fmt.Errorf("failed to persist history: %w", err)
	}

	return &entry, nil
}

// LoadAll returns all recorded entries, most recent first.
func (s *Service) LoadAll(ctx context.Context) []models.HistoryEntry {
	entries := s.load(ctx)

	// Reverse insertion order for display
	reversed := make([]models.HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		reversed = append(reversed, entries[i])
	}
	return reversed
}

// load decodes the history slot in insertion order. A missing slot or an
// undecodable payload is treated as empty history; no repair is attempted.
func (s *Service) load(ctx context.Context) []models.HistoryEntry {
	value, err := s.slots.Get(ctx, SlotHistory)
	if err != nil {
		if !errors.Is(err, interfaces.ErrSlotNotFound) {
			s.logger.Warn().Err(err).Msg("Failed to read history slot")
		}
		return nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		s.logger.Debug().Err(err).Msg("History slot undecodable, treating as empty")
		return nil
	}

	return entries
}
