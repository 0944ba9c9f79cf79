package gaps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manntalati/smart-wardrobe/internal/core/classifier"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/llm"
)

func testCapsule() *Capsule {
	return &Capsule{
		NeutralColors: []string{"black", "white", "navy blue", "grey", "beige"},
		Essentials: []Essential{
			{Category: "t-shirt", Group: "casual", Min: 3, PriceRange: "$15 - $40"},
			{Category: "jeans", Group: "casual", Min: 2, PriceRange: "$40 - $100"},
			{Category: "sneakers", Group: "casual", Min: 1, PriceRange: "$50 - $120"},
			{Category: "blazer", Group: "formal", Min: 1, PriceRange: "$80 - $250"},
		},
	}
}

func testTaxonomy() *classifier.Taxonomy {
	tax := &classifier.Taxonomy{}
	tax.Classes.Tops = []string{"t-shirt", "shirt", "blazer"}
	tax.Classes.Bottoms = []string{"jeans", "pants"}
	tax.Classes.Shoes = []string{"sneakers", "boots"}
	return tax
}

func item(category, color, season string, tags ...string) model.Item {
	return model.Item{Category: category, Color: color, Season: season, Fabric: "cotton", OccasionTags: tags}
}

func TestAnalyzeEmptyWardrobe(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)

	report := a.Analyze(context.Background(), nil, "")
	assert.Equal(t, []string{"Your wardrobe is empty!"}, report.Gaps)
	require.NotEmpty(t, report.Suggestions)
	for _, s := range report.Suggestions {
		assert.Equal(t, model.PriorityHigh, s.Priority)
	}
	assert.Equal(t, 0, report.Analysis.TotalItems)
	assert.Equal(t, emptyWardrobeMessage, report.Analysis.Message)
}

func TestAnalyzeEmptyWardrobeRespectsOccasionFilter(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)

	report := a.Analyze(context.Background(), nil, "formal")
	require.Len(t, report.Suggestions, 1)
	assert.Equal(t, "blazer", report.Suggestions[0].Category)
}

func TestAnalyzeMissingCategoryIsHighPriority(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "white", "all-season"),
		item("t-shirt", "black", "all-season"),
		item("t-shirt", "navy blue", "all-season"),
		item("jeans", "blue", "all-season"),
		item("jeans", "black", "all-season"),
		item("sneakers", "white", "all-season"),
	}

	report := a.Analyze(context.Background(), items, "")
	assert.Contains(t, report.Gaps, "Missing clothing type: blazer")

	var blazer *model.ShoppingSuggestion
	for i := range report.Suggestions {
		if report.Suggestions[i].Category == "blazer" {
			blazer = &report.Suggestions[i]
		}
	}
	require.NotNil(t, blazer)
	assert.Equal(t, model.PriorityHigh, blazer.Priority)
	assert.Equal(t, "$80 - $250", blazer.EstimatedPriceRange)
}

func TestAnalyzeBelowMinimumIsMediumPriority(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "white", "all-season"),
		item("jeans", "blue", "all-season"),
		item("jeans", "black", "all-season"),
		item("sneakers", "grey", "all-season"),
		item("blazer", "navy blue", "all-season"),
	}

	report := a.Analyze(context.Background(), items, "")
	assert.Contains(t, report.Gaps, "Only 1 of 3 recommended t-shirts")

	var tee *model.ShoppingSuggestion
	for i := range report.Suggestions {
		if report.Suggestions[i].Category == "t-shirt" {
			tee = &report.Suggestions[i]
		}
	}
	require.NotNil(t, tee)
	assert.Equal(t, model.PriorityMedium, tee.Priority)
}

func TestAnalyzeSuggestionsSortedByPriority(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	// Loud colors only: triggers the low-priority neutrals suggestion next to
	// high (missing) and medium (below minimum) ones.
	items := []model.Item{
		item("t-shirt", "red", "all-season"),
		item("jeans", "green", "all-season"),
	}

	report := a.Analyze(context.Background(), items, "")
	require.NotEmpty(t, report.Suggestions)
	for i := 1; i < len(report.Suggestions); i++ {
		prev := model.PriorityRank(report.Suggestions[i-1].Priority)
		curr := model.PriorityRank(report.Suggestions[i].Priority)
		assert.LessOrEqual(t, prev, curr)
	}
	assert.Equal(t, model.PriorityHigh, report.Suggestions[0].Priority)
	assert.Equal(t, model.PriorityLow, report.Suggestions[len(report.Suggestions)-1].Priority)
}

func TestAnalyzeNeutralColorGap(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "red", "all-season"),
		item("jeans", "blue", "all-season"),
	}

	report := a.Analyze(context.Background(), items, "")
	found := false
	for _, g := range report.Gaps {
		if len(g) > 0 && g[:7] == "Limited" {
			found = true
			assert.Contains(t, g, "black")
		}
	}
	assert.True(t, found, "expected a neutral-color gap")
}

func TestAnalyzeSeasonGaps(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{item("t-shirt", "white", "spring/summer")}

	report := a.Analyze(context.Background(), items, "")
	assert.Contains(t, report.Gaps, "No fall/winter items — you may need warmer clothing")
	assert.NotContains(t, report.Gaps, "No spring/summer items — you may need lighter clothing")
}

func TestAnalyzeBalanceGaps(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "white", "all-season"),
		item("t-shirt", "black", "all-season"),
	}

	report := a.Analyze(context.Background(), items, "")
	assert.Contains(t, report.Gaps, "No bottoms in your wardrobe — add pants, jeans, or skirts")
	assert.Contains(t, report.Gaps, "No shoes in your wardrobe — footwear completes any outfit")
}

func TestAnalyzeOccasionFilterRestrictsScope(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "white", "all-season", "casual"),
		item("blazer", "navy blue", "all-season", "formal"),
	}

	report := a.Analyze(context.Background(), items, "formal")
	assert.Equal(t, 1, report.Analysis.TotalItems)
	// The formal group only expects a blazer, which is present.
	assert.NotContains(t, report.Gaps, "Missing clothing type: t-shirt")
	assert.NotContains(t, report.Gaps, "Missing clothing type: blazer")
}

func TestAnalyzeGapMonotonicity(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "white", "spring/summer"),
		item("jeans", "blue", "all-season"),
	}

	before := a.Analyze(context.Background(), items, "")
	after := a.Analyze(context.Background(), append(items, item("sneakers", "black", "fall/winter")), "")
	assert.Less(t, len(after.Gaps), len(before.Gaps))
}

func TestAnalyzeWellRoundedWardrobe(t *testing.T) {
	a := NewAnalyzer(testCapsule(), testTaxonomy(), nil, nil)
	items := []model.Item{
		item("t-shirt", "white", "spring/summer"),
		item("t-shirt", "black", "all-season"),
		item("t-shirt", "grey", "all-season"),
		item("jeans", "navy blue", "all-season"),
		item("jeans", "black", "fall/winter"),
		item("sneakers", "white", "all-season"),
		item("blazer", "beige", "all-season"),
	}

	report := a.Analyze(context.Background(), items, "")
	assert.Equal(t, []string{"Your wardrobe looks well-rounded! Here are some suggestions to enhance it."}, report.Gaps)
	assert.Empty(t, report.Suggestions)
}

func TestAnalyzeEnrichedSuggestions(t *testing.T) {
	mock := &llm.MockLLM{Response: `{
		"suggestions": [
			{"item": "A slim dark-wash jean", "category": "jeans", "reason": "Pairs with every top you own.", "priority": "high", "estimated_price_range": "$60 - $120"},
			{"item": "", "category": "noise", "reason": "", "priority": "high", "estimated_price_range": ""},
			{"item": "Leather belt", "category": "accessories", "reason": "Finishes looks.", "priority": "someday", "estimated_price_range": "$25 - $60"}
		]
	}`}
	a := NewAnalyzer(testCapsule(), testTaxonomy(), mock, nil)
	items := []model.Item{item("t-shirt", "white", "all-season")}

	report := a.Analyze(context.Background(), items, "")
	require.Len(t, report.Suggestions, 2)
	assert.Equal(t, "A slim dark-wash jean", report.Suggestions[0].Item)
	// Unknown priorities are clamped to low and therefore sort last.
	assert.Equal(t, model.PriorityLow, report.Suggestions[1].Priority)
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Total items: 1")
}

func TestAnalyzeFallsBackWhenBackendFails(t *testing.T) {
	mock := &llm.MockLLM{Err: errors.New("backend down")}
	a := NewAnalyzer(testCapsule(), testTaxonomy(), mock, nil)
	items := []model.Item{item("t-shirt", "red", "all-season")}

	report := a.Analyze(context.Background(), items, "")
	require.NotEmpty(t, report.Suggestions)
	// Deterministic suggestions survive the failed enrichment.
	assert.Equal(t, model.PriorityHigh, report.Suggestions[0].Priority)
}
