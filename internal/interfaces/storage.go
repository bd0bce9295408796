package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrSlotNotFound is returned when a named slot does not exist
var ErrSlotNotFound = errors.New("slot not found")

// Slot represents one named persisted value.
//
// The credential record, session flag, and generation history each own
// exactly one slot; no component shares write access to another's slot.
type Slot struct {
	Name      string    `json:"name" badgerhold:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SlotStorage defines persistence over named slots. It is injected into the
// account and history services so tests can substitute an in-memory fake.
type SlotStorage interface {
	// Get retrieves a slot value. Returns ErrSlotNotFound when absent.
	Get(ctx context.Context, name string) (string, error)

	// Set inserts or replaces a slot value.
	Set(ctx context.Context, name string, value string) error

	// Delete removes a slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all slots ordered by most recently updated.
	List(ctx context.Context) ([]Slot, error)
}

// StorageManager provides access to storage implementations
type StorageManager interface {
	SlotStorage() SlotStorage
	Close() error
}
