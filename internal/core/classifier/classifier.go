// Package classifier maps clothing images to taxonomy labels by zero-shot
// classification: the image embedding is compared against precomputed label
// text embeddings in the same vector space, dimension by dimension.
// Dimensions are scored independently; no cross-dimension consistency is
// enforced, so an occasional "wool + summer" combination is expected.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/manntalati/smart-wardrobe/internal/core/common"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/llm"
)

// ErrClassification wraps any failure to classify an upload: undecodable
// input or an unreachable embedding backend. The upload is rejected.
var ErrClassification = errors.New("classification failed")

// logitScale sharpens softmax confidences the way CLIP's logit scale does.
const logitScale = 100

// defaultOccasionThreshold admits occasion labels above this cosine
// similarity. Occasions are multi-label: an item can suit several.
const defaultOccasionThreshold = 0.2

type Classifier struct {
	embedder llm.EmbedderClient
	taxonomy *Taxonomy

	// Label embeddings per dimension, computed once at construction so
	// classification is deterministic for fixed input and fixed taxonomy.
	labelVecs map[string][][]float32
}

// New precomputes text embeddings for every taxonomy label. One Embed call
// per label, at startup only.
func New(ctx context.Context, embedder llm.EmbedderClient, tax *Taxonomy) (*Classifier, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: no embedding backend configured", ErrClassification)
	}

	c := &Classifier{
		embedder:  embedder,
		taxonomy:  tax,
		labelVecs: make(map[string][][]float32),
	}

	for name, dim := range c.dimensions() {
		vecs := make([][]float32, len(dim.Labels))
		for i := range dim.Labels {
			vec, err := embedder.EmbedText(ctx, dim.Prompt(i))
			if err != nil {
				return nil, fmt.Errorf("embedding taxonomy label %q: %w", dim.Prompt(i), err)
			}
			vecs[i] = common.Normalized(vec)
		}
		c.labelVecs[name] = vecs
	}

	return c, nil
}

func (c *Classifier) Taxonomy() *Taxonomy {
	return c.taxonomy
}

func (c *Classifier) dimensions() map[string]Dimension {
	return map[string]Dimension{
		"category": c.taxonomy.Category,
		"color":    c.taxonomy.Color,
		"pattern":  c.taxonomy.Pattern,
		"season":   c.taxonomy.Season,
		"fabric":   c.taxonomy.Fabric,
		"occasion": c.taxonomy.Occasion,
	}
}

// Classify labels an image across every taxonomy dimension and returns the
// attribute set together with the image embedding, so the caller can persist
// and index the vector without a second backend round-trip.
func (c *Classifier) Classify(ctx context.Context, image []byte) (model.AttributeSet, []float32, error) {
	if len(image) == 0 {
		return model.AttributeSet{}, nil, fmt.Errorf("%w: empty image", ErrClassification)
	}

	raw, err := c.embedder.EmbedImage(ctx, image)
	if err != nil {
		return model.AttributeSet{}, nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	imageVec := common.Normalized(raw)

	var attrs model.AttributeSet

	category, confidence := c.argmax("category", c.taxonomy.Category, imageVec)
	attrs.Category = category
	attrs.Confidence = confidence

	attrs.Color, _ = c.argmax("color", c.taxonomy.Color, imageVec)
	attrs.Pattern, _ = c.argmax("pattern", c.taxonomy.Pattern, imageVec)
	attrs.Season, _ = c.argmax("season", c.taxonomy.Season, imageVec)
	attrs.Fabric, _ = c.argmax("fabric", c.taxonomy.Fabric, imageVec)
	attrs.OccasionTags = c.multiLabel("occasion", c.taxonomy.Occasion, imageVec)

	return attrs, raw, nil
}

// argmax picks the best label for one dimension. The returned confidence is
// the softmax probability of the winning label over that dimension's
// candidates.
func (c *Classifier) argmax(name string, dim Dimension, imageVec []float32) (string, float64) {
	scores := c.scores(name, imageVec)
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	probs := common.Softmax(scores, logitScale)
	return dim.Value(best), probs[best]
}

// multiLabel selects every label above the dimension's similarity threshold.
// If nothing clears it, the argmax label is returned alone so an item always
// carries at least one tag.
func (c *Classifier) multiLabel(name string, dim Dimension, imageVec []float32) []string {
	threshold := dim.Threshold
	if threshold == 0 {
		threshold = defaultOccasionThreshold
	}

	scores := c.scores(name, imageVec)
	var tags []string
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
		if s >= threshold {
			tags = append(tags, dim.Value(i))
		}
	}
	if len(tags) == 0 {
		tags = []string{dim.Value(best)}
	}
	return tags
}

func (c *Classifier) scores(name string, imageVec []float32) []float64 {
	vecs := c.labelVecs[name]
	scores := make([]float64, len(vecs))
	for i, lv := range vecs {
		scores[i] = common.Dot(imageVec, lv)
	}
	return scores
}
