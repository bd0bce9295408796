package community

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/common"
	"github.com/ternarybob/imaginai/internal/models"
)

const defaultSize = 20

// placeholderPrompts give each gallery entry a plausible caption. The
// gallery is a static showcase, not user content.
var placeholderPrompts = []string{
	"A neon city skyline at dusk",
	"Watercolor mountains over a still lake",
	"A fox sleeping in autumn leaves",
	"Retro-futuristic space station interior",
	"Bioluminescent jellyfish in deep ocean",
	"A cottage garden in morning fog",
	"Abstract geometric waves in pastel tones",
	"A lighthouse in a thunderstorm",
	"Street market in a rain-soaked alley",
	"Desert dunes under a violet sky",
}

// Service serves the community showcase gallery. Entries are built once
// at startup; only their presentation order changes per request.
type Service struct {
	entries []models.CommunityImage
	logger  arbor.ILogger
}

// NewService builds the showcase gallery from configuration.
func NewService(config *common.CommunityConfig, logger arbor.ILogger) *Service {
	size := defaultSize
	if config != nil && config.Size > 0 {
		size = config.Size
	}

	base := time.Now().Add(-time.Duration(size) * time.Minute)
	entries := make([]models.CommunityImage, 0, size)
	for i := 0; i < size; i++ {
		entries = append(entries, models.CommunityImage{
			ID:        common.NewCommunityID(),
			URL:       fmt.Sprintf("https://picsum.photos/seed/%d/400/400", i+1),
			Prompt:    placeholderPrompts[i%len(placeholderPrompts)],
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
	}

	if logger != nil {
		logger.Debug().Int("size", size).Msg("Community gallery initialized")
	}

	return &Service{entries: entries, logger: logger}
}

// List returns the gallery in a fresh random order. The underlying
// entries are never mutated.
func (s *Service) List() []models.CommunityImage {
	shuffled := make([]models.CommunityImage, len(s.entries))
	copy(shuffled, s.entries)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
