package accounts

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/interfaces"
	"github.com/ternarybob/imaginai/internal/models"
)

const (
	// SlotUser holds the single credential record as a JSON object.
	SlotUser = "user"

	// SlotSession holds the literal string "true" while a session is active.
	// Any other value, or absence, means no session.
	SlotSession = "isAuth"

	// sessionActive is the only value that marks an active session.
	sessionActive = "true"
)

// Service manages the single credential record and the session flag.
//
// The session flag is persisted independently of the credential record:
// logout clears only the flag, so a signed-up user can log back in without
// re-signup. Nothing enforces referential integrity between the two slots.
type Service struct {
	slots  interfaces.SlotStorage
	logger arbor.ILogger
}

// NewService creates a new account service backed by the given slot storage
func NewService(slots interfaces.SlotStorage, logger arbor.ILogger) *Service {
	return &Service{
		slots:  slots,
		logger: logger,
	}
}

// Signup unconditionally overwrites the credential record with the given
// pair. There is no uniqueness check and no field validation; a persistence
// failure is logged and swallowed.
func (s *Service) Signup(ctx context.Context, username, password string) {
	record, err := json.Marshal(models.User{Username: username, Password: password})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to encode credential record")
		return
	}

	if err := s.slots.Set(ctx, SlotUser, string(record)); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist credential record")
	}
}

// Login compares the given pair against the stored record (exact,
// case-sensitive match). On success the session flag is set and true is
// returned; otherwise false, and the flag is left untouched.
func (s *Service) Login(ctx context.Context, username, password string) bool {
	value, err := s.slots.Get(ctx, SlotUser)
	if err != nil {
		if !errors.Is(err, interfaces.ErrSlotNotFound) {
			s.logger.Warn().Err(err).Msg("Failed to read credential record")
		}
		return false
	}

	var user models.User
	if err := json.Unmarshal([]byte(value), &user); err != nil {
		s.logger.Warn().Err(err).Msg("Stored credential record is not valid JSON")
		return false
	}

	if user.Username != username || user.Password != password {
		return false
	}

	if err := s.slots.Set(ctx, SlotSession, sessionActive); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to persist session flag")
	}

	return true
}

// Logout clears the session flag. The credential record is preserved.
func (s *Service) Logout(ctx context.Context) {
	if err := s.slots.Delete(ctx, SlotSession); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear session flag")
	}
}

// IsAuthenticated reports whether the session flag is present and set to
// the literal true sentinel. Pure read; never writes.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	value, err := s.slots.Get(ctx, SlotSession)
	if err != nil {
		return false
	}
	return value == sessionActive
}
