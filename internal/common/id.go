package common

import (
	"github.com/google/uuid"
)

// NewCommunityID generates a unique community image ID with the "cim_" prefix
// Format: cim_<uuid>
func NewCommunityID() string {
	return "cim_" + uuid.New().String()
}
