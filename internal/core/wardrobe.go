// Package core wires the wardrobe intelligence pipeline: classification,
// the embedding index, knowledge retrieval, outfit recommendation and gap
// analysis. It owns no storage; catalog snapshots are passed in by the
// caller and persistence stays with the storage collaborator.
package core

import (
	"context"

	"github.com/manntalati/smart-wardrobe/internal/core/classifier"
	"github.com/manntalati/smart-wardrobe/internal/core/gaps"
	"github.com/manntalati/smart-wardrobe/internal/core/index"
	"github.com/manntalati/smart-wardrobe/internal/core/knowledge"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/core/recommend"
	"github.com/manntalati/smart-wardrobe/internal/llm"
	"github.com/manntalati/smart-wardrobe/internal/weather"
)

type Wardrobe struct {
	Classifier *classifier.Classifier
	Index      *index.Index
	Retriever  *knowledge.Retriever
	Engine     *recommend.Engine
	Analyzer   *gaps.Analyzer
}

// New assembles the pipeline around an already-primed classifier and
// retriever. Classifier may be nil when no embedding backend is configured;
// classification then fails but recommendations and gap analysis still work.
func New(cls *classifier.Classifier, ix *index.Index, retriever *knowledge.Retriever, generative llm.LLMClient, tax *classifier.Taxonomy, capsule *gaps.Capsule) *Wardrobe {
	return &Wardrobe{
		Classifier: cls,
		Index:      ix,
		Retriever:  retriever,
		Engine:     recommend.NewEngine(generative, retriever, tax),
		Analyzer:   gaps.NewAnalyzer(capsule, tax, generative, retriever),
	}
}

// Classify labels an image and returns the attributes plus the image
// embedding for the caller to persist and index.
func (w *Wardrobe) Classify(ctx context.Context, image []byte) (model.AttributeSet, []float32, error) {
	if w.Classifier == nil {
		return model.AttributeSet{}, nil, classifier.ErrClassification
	}
	return w.Classifier.Classify(ctx, image)
}

func (w *Wardrobe) IndexInsert(id int64, vec []float32) error {
	return w.Index.Insert(id, vec)
}

func (w *Wardrobe) IndexRemove(id int64) error {
	return w.Index.Remove(id)
}

func (w *Wardrobe) IndexQuery(vec []float32, k int, exclude ...int64) ([]index.Result, error) {
	return w.Index.Query(vec, k, exclude...)
}

// RebuildIndex restores the index from a catalog snapshot's persisted
// vectors. Must run before the index serves queries after a restart.
func (w *Wardrobe) RebuildIndex(items []model.Item) error {
	vectors := make(map[int64][]float32)
	for _, it := range items {
		if len(it.Embedding) > 0 {
			vectors[it.ID] = it.Embedding
		}
	}
	return w.Index.Rebuild(vectors)
}

func (w *Wardrobe) Recommend(ctx context.Context, items []model.Item, snap *weather.Snapshot, occasion, style string, numOutfits int) recommend.Recommendation {
	return w.Engine.Recommend(ctx, items, snap, occasion, style, numOutfits)
}

func (w *Wardrobe) AnalyzeGaps(ctx context.Context, items []model.Item, occasionFilter string) model.GapReport {
	return w.Analyzer.Analyze(ctx, items, occasionFilter)
}
