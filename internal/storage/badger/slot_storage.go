package badger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/interfaces"
	"github.com/timshannon/badgerhold/v4"
)

// SlotStorage implements the SlotStorage interface for Badger.
//
// Each slot is a single record keyed by name; writers replace the whole
// value. There is no locking or versioning across slots - concurrent
// writers to the same slot last-write-wins, which the application accepts
// for its single-user scale.
type SlotStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSlotStorage creates a new SlotStorage instance
func NewSlotStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SlotStorage {
	return &SlotStorage{
		db:     db,
		logger: logger,
	}
}

// normalizeName trims surrounding whitespace from a slot name
func (s *SlotStorage) normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// Get retrieves a slot value by name
func (s *SlotStorage) Get(ctx context.Context, name string) (string, error) {
	normalized := s.normalizeName(name)
	var slot interfaces.Slot
	err := s.db.Store().Get(normalized, &slot)
	if err == badgerhold.ErrNotFound {
		return "", interfaces.ErrSlotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get slot %q: %w", normalized, err)
	}

	return slot.Value, nil
}

// Set inserts or replaces a slot value
func (s *SlotStorage) Set(ctx context.Context, name string, value string) error {
	normalized := s.normalizeName(name)
	now := time.Now()

	slot := interfaces.Slot{
		Name:      normalized,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Check if exists to preserve CreatedAt
	var existing interfaces.Slot
	if err := s.db.Store().Get(normalized, &existing); err == nil {
		slot.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Store().Upsert(normalized, &slot); err != nil {
		return fmt.Errorf("failed to set slot %q: %w", normalized, err)
	}

	return nil
}

// Delete removes a slot. Deleting an absent slot is a no-op.
func (s *SlotStorage) Delete(ctx context.Context, name string) error {
	normalized := s.normalizeName(name)
	err := s.db.Store().Delete(normalized, &interfaces.Slot{})
	if err == badgerhold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", normalized, err)
	}
	return nil
}

// List returns all slots ordered by updated_at DESC
func (s *SlotStorage) List(ctx context.Context) ([]interfaces.Slot, error) {
	var slots []interfaces.Slot
	err := s.db.Store().Find(&slots, badgerhold.Where("Name").Ne("").SortBy("UpdatedAt").Reverse())
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}
