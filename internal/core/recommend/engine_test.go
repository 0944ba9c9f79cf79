package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manntalati/smart-wardrobe/internal/core/knowledge"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/llm"
	"github.com/manntalati/smart-wardrobe/internal/weather"
)

func TestRecommendEmptyWardrobe(t *testing.T) {
	e := NewEngine(nil, nil, testTaxonomy())

	rec := e.Recommend(context.Background(), nil, nil, "casual", "", 3)
	require.NotNil(t, rec.Outfits)
	assert.Empty(t, rec.Outfits)
	assert.Equal(t, emptyWardrobeMessage, rec.Message)
}

func TestRecommendGenerative(t *testing.T) {
	mock := &llm.MockLLM{Response: `{
		"outfits": [
			{"name": "Weekend Look", "items": [1, 2], "description": "Relaxed.", "style_notes": "Roll the sleeves."}
		]
	}`}
	e := NewEngine(mock, nil, testTaxonomy())
	items := []model.Item{
		casualItem(1, "t-shirt", "white", "all-season"),
		casualItem(2, "jeans", "blue", "all-season"),
	}

	rec := e.Recommend(context.Background(), items, nil, "casual", "minimalist", 3)
	require.Len(t, rec.Outfits, 1)
	assert.Equal(t, "Weekend Look", rec.Outfits[0].Name)
	assert.Empty(t, rec.Message)

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "ID:1")
	assert.Contains(t, mock.Prompts[0], "minimalist")
}

func TestRecommendDropsUnknownIdentities(t *testing.T) {
	mock := &llm.MockLLM{Response: `{
		"outfits": [
			{"name": "Phantom", "items": [99], "description": "Hallucinated.", "style_notes": ""},
			{"name": "Real", "items": [1, 2], "description": "Grounded.", "style_notes": ""},
			{"name": "Empty", "items": [], "description": "Nothing.", "style_notes": ""}
		]
	}`}
	e := NewEngine(mock, nil, testTaxonomy())
	items := []model.Item{
		casualItem(1, "t-shirt", "white", "all-season"),
		casualItem(2, "jeans", "blue", "all-season"),
	}

	rec := e.Recommend(context.Background(), items, nil, "casual", "", 3)
	require.Len(t, rec.Outfits, 1)
	assert.Equal(t, "Real", rec.Outfits[0].Name)
}

func TestRecommendFallsBackOnBackendFailure(t *testing.T) {
	mock := &llm.MockLLM{Err: errors.New("backend down")}
	e := NewEngine(mock, nil, testTaxonomy())
	items := []model.Item{
		casualItem(1, "t-shirt", "white", "all-season"),
		casualItem(2, "jeans", "blue", "all-season"),
	}

	rec := e.Recommend(context.Background(), items, nil, "casual", "", 3)
	require.Len(t, rec.Outfits, 1)
	assert.Equal(t, []int64{1, 2}, rec.Outfits[0].Items)
	assert.Equal(t, fallbackMessage, rec.Message)
}

func TestRecommendFallsBackOnMalformedJSON(t *testing.T) {
	mock := &llm.MockLLM{Response: "I am not JSON at all"}
	e := NewEngine(mock, nil, testTaxonomy())
	items := []model.Item{
		casualItem(1, "t-shirt", "white", "all-season"),
		casualItem(2, "jeans", "blue", "all-season"),
	}

	rec := e.Recommend(context.Background(), items, nil, "casual", "", 3)
	require.Len(t, rec.Outfits, 1)
	assert.Equal(t, fallbackMessage, rec.Message)
}

func TestRecommendExplainsEmptyRuleResult(t *testing.T) {
	e := NewEngine(nil, nil, testTaxonomy())
	// A single casual top can never satisfy a formal request.
	items := []model.Item{casualItem(1, "t-shirt", "white", "all-season")}

	rec := e.Recommend(context.Background(), items, nil, "formal", "", 3)
	require.NotNil(t, rec.Outfits)
	assert.Empty(t, rec.Outfits)
	assert.Contains(t, rec.Message, `"formal"`)
}

func TestRecommendFeedsKnowledgeIntoPrompt(t *testing.T) {
	chunk := "Neutral colors like black, white, and navy pair with almost anything in a capsule wardrobe."
	embedder := &llm.MockEmbedder{Default: []float32{1, 0, 0}}
	retriever, err := knowledge.NewFromChunks(embedder, []string{chunk}, [][]float32{{1, 0, 0}})
	require.NoError(t, err)

	mock := &llm.MockLLM{Response: `{"outfits": []}`}
	e := NewEngine(mock, retriever, testTaxonomy())
	items := []model.Item{casualItem(1, "t-shirt", "white", "all-season")}

	w := &weather.Snapshot{City: "Chicago", TemperatureF: 72, Description: "clear sky", Main: "Clear"}
	e.Recommend(context.Background(), items, w, "casual", "", 3)

	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], chunk)
	assert.Contains(t, mock.Prompts[0], "Chicago")
}
