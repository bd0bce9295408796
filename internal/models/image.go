package models

import "time"

// GeneratedImage is the transient result of one generation call, before it
// is stamped with an id and timestamp for the history slot.
type GeneratedImage struct {
	URL    string `json:"url"`    // Data URI or callable URL
	Prompt string `json:"prompt"` // Prompt text as submitted (trimmed)
}

// HistoryEntry is the immutable record of one successful generation.
// Entries are appended to the history slot in insertion order and never
// updated or individually deleted.
type HistoryEntry struct {
	ID        string    `json:"id"`        // Derived from creation time (unix milliseconds)
	URL       string    `json:"url"`       // Data URI or callable URL
	Prompt    string    `json:"prompt"`    // Prompt text
	Timestamp time.Time `json:"timestamp"` // Creation time (ISO-8601 on the wire)
}

// CommunityImage is a placeholder entry in the community gallery feed.
type CommunityImage struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Prompt    string    `json:"prompt"`
	Timestamp time.Time `json:"timestamp"`
}
