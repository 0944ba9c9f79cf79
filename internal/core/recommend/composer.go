package recommend

import (
	"context"

	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/weather"
)

// Request carries everything a composer needs to assemble outfits. Items is
// a consistent catalog snapshot supplied by the storage collaborator; the
// composer never reaches into storage itself.
type Request struct {
	Items      []model.Item
	Weather    *weather.Snapshot
	Occasion   string
	Style      string
	Knowledge  []string
	NumOutfits int
}

// Composer turns a request into outfit suggestions. Two implementations
// exist: the generative composer, which prompts an LLM, and the rule-based
// composer, which is fully deterministic. The engine picks one at call time
// based on backend availability.
type Composer interface {
	Compose(ctx context.Context, req Request) ([]model.OutfitSuggestion, error)
}
