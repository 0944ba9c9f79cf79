// Package gaps computes distributional statistics over a catalog snapshot
// and derives prioritized shopping suggestions from the capsule wardrobe
// minimum-coverage table. The deterministic analysis always runs; a
// generative backend, when present, only rephrases it into richer
// suggestions and is replaced by the deterministic output on any failure.
package gaps

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/manntalati/smart-wardrobe/internal/core/classifier"
	"github.com/manntalati/smart-wardrobe/internal/core/common"
	"github.com/manntalati/smart-wardrobe/internal/core/knowledge"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/llm"
)

const emptyWardrobeMessage = "Start by uploading some clothing items to get personalized suggestions."

// missingNeutralsThreshold: a wardrobe missing at least this many neutral
// colors gets a color-diversity gap.
const missingNeutralsThreshold = 3

type Analyzer struct {
	capsule   *Capsule
	taxonomy  *classifier.Taxonomy
	llm       llm.LLMClient
	retriever *knowledge.Retriever
}

func NewAnalyzer(capsule *Capsule, tax *classifier.Taxonomy, client llm.LLMClient, retriever *knowledge.Retriever) *Analyzer {
	return &Analyzer{capsule: capsule, taxonomy: tax, llm: client, retriever: retriever}
}

// Analyze inspects a catalog snapshot, optionally restricted to an occasion
// group, and returns gaps plus ranked shopping suggestions. Never errors: an
// empty catalog yields a single informational message instead of gap spam.
func (a *Analyzer) Analyze(ctx context.Context, items []model.Item, occasionFilter string) model.GapReport {
	if occasionFilter != "" {
		filtered := items[:0:0]
		for _, it := range items {
			if it.HasOccasion(occasionFilter) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	analysis := summarize(items)

	if len(items) == 0 {
		analysis.Message = emptyWardrobeMessage
		return model.GapReport{
			Gaps:        []string{"Your wardrobe is empty!"},
			Suggestions: a.starterSuggestions(occasionFilter),
			Analysis:    analysis,
		}
	}

	gaps, suggestions := a.coverage(analysis, occasionFilter)

	if a.llm != nil {
		if enriched, err := a.enrich(ctx, analysis, gaps, occasionFilter); err == nil && len(enriched) > 0 {
			suggestions = enriched
		} else if err != nil {
			log.Printf("Generative shopping suggestions failed, using deterministic ones: %v", err)
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return model.PriorityRank(suggestions[i].Priority) < model.PriorityRank(suggestions[j].Priority)
	})

	return model.GapReport{Gaps: gaps, Suggestions: suggestions, Analysis: analysis}
}

func summarize(items []model.Item) model.WardrobeAnalysis {
	analysis := model.WardrobeAnalysis{
		TotalItems: len(items),
		Categories: map[string]int{},
		Colors:     map[string]int{},
		Seasons:    map[string]int{},
		Fabrics:    map[string]int{},
		Occasions:  map[string]int{},
	}
	for _, it := range items {
		analysis.Categories[it.Category]++
		analysis.Colors[it.Color]++
		analysis.Seasons[it.Season]++
		analysis.Fabrics[it.Fabric]++
		for _, tag := range it.OccasionTags {
			analysis.Occasions[tag]++
		}
	}
	return analysis
}

// coverage compares the analysis against the capsule table. Priority is
// derived from how far below the minimum a category falls: zero items is
// high, below minimum but nonzero is medium, coverage-adjacent issues
// (neutral color diversity) are low.
func (a *Analyzer) coverage(analysis model.WardrobeAnalysis, occasionFilter string) ([]string, []model.ShoppingSuggestion) {
	var gaps []string
	var suggestions []model.ShoppingSuggestion

	for _, e := range a.capsule.ForGroup(occasionFilter) {
		count := analysis.Categories[e.Category]
		switch {
		case count == 0:
			gaps = append(gaps, fmt.Sprintf("Missing clothing type: %s", e.Category))
			suggestions = append(suggestions, model.ShoppingSuggestion{
				Item:                fmt.Sprintf("A versatile %s in a neutral color", e.Category),
				Category:            e.Category,
				Reason:              fmt.Sprintf("You have no %s; a capsule wardrobe expects at least %d.", e.Category, e.Min),
				Priority:            model.PriorityHigh,
				EstimatedPriceRange: e.PriceRange,
			})
		case count < e.Min:
			gaps = append(gaps, fmt.Sprintf("Only %d of %d recommended %s", count, e.Min, plural(e.Category)))
			suggestions = append(suggestions, model.ShoppingSuggestion{
				Item:                fmt.Sprintf("An additional %s to round out the rotation", e.Category),
				Category:            e.Category,
				Reason:              fmt.Sprintf("You have %d %s; a capsule wardrobe expects at least %d.", count, plural(e.Category), e.Min),
				Priority:            model.PriorityMedium,
				EstimatedPriceRange: e.PriceRange,
			})
		}
	}

	if missing := a.missingNeutrals(analysis); len(missing) >= missingNeutralsThreshold {
		gaps = append(gaps, fmt.Sprintf("Limited neutral colors — consider adding: %s", strings.Join(missing[:missingNeutralsThreshold], ", ")))
		suggestions = append(suggestions, model.ShoppingSuggestion{
			Item:                "Basic wardrobe staples in black, white, or navy",
			Category:            "basics",
			Reason:              "Neutral colors combine with everything and stretch a small wardrobe further.",
			Priority:            model.PriorityLow,
			EstimatedPriceRange: "$20 - $50",
		})
	}

	if analysis.Seasons["fall/winter"] == 0 {
		gaps = append(gaps, "No fall/winter items — you may need warmer clothing")
	}
	if analysis.Seasons["spring/summer"] == 0 {
		gaps = append(gaps, "No spring/summer items — you may need lighter clothing")
	}

	gaps = append(gaps, a.balanceGaps(analysis)...)

	if len(gaps) == 0 {
		gaps = append(gaps, "Your wardrobe looks well-rounded! Here are some suggestions to enhance it.")
	}
	return gaps, suggestions
}

// maxStarterSuggestions caps the shopping list handed to a brand-new user.
const maxStarterSuggestions = 5

// starterSuggestions seeds an empty wardrobe with the first essentials from
// the capsule table instead of a per-category gap for everything at once.
func (a *Analyzer) starterSuggestions(occasionFilter string) []model.ShoppingSuggestion {
	essentials := a.capsule.ForGroup(occasionFilter)
	if len(essentials) > maxStarterSuggestions {
		essentials = essentials[:maxStarterSuggestions]
	}
	suggestions := make([]model.ShoppingSuggestion, 0, len(essentials))
	for _, e := range essentials {
		suggestions = append(suggestions, model.ShoppingSuggestion{
			Item:                fmt.Sprintf("A versatile %s in a neutral color", e.Category),
			Category:            e.Category,
			Reason:              "A foundational piece for building your first capsule wardrobe.",
			Priority:            model.PriorityHigh,
			EstimatedPriceRange: e.PriceRange,
		})
	}
	return suggestions
}

func (a *Analyzer) missingNeutrals(analysis model.WardrobeAnalysis) []string {
	var missing []string
	for _, c := range a.capsule.NeutralColors {
		if analysis.Colors[c] == 0 {
			missing = append(missing, c)
		}
	}
	return missing
}

// balanceGaps flags structurally lopsided wardrobes using the taxonomy's
// category classes.
func (a *Analyzer) balanceGaps(analysis model.WardrobeAnalysis) []string {
	classCount := func(class []string) int {
		n := 0
		for _, c := range class {
			n += analysis.Categories[c]
		}
		return n
	}
	tops := classCount(a.taxonomy.Classes.Tops)
	bottoms := classCount(a.taxonomy.Classes.Bottoms)
	shoes := classCount(a.taxonomy.Classes.Shoes)

	var gaps []string
	if tops > 0 && bottoms == 0 {
		gaps = append(gaps, "No bottoms in your wardrobe — add pants, jeans, or skirts")
	}
	if tops == 0 && bottoms > 0 {
		gaps = append(gaps, "No tops in your wardrobe — add shirts, t-shirts, or blouses")
	}
	if shoes == 0 && (tops > 0 || bottoms > 0) {
		gaps = append(gaps, "No shoes in your wardrobe — footwear completes any outfit")
	}
	return gaps
}

type suggestionsResponse struct {
	Suggestions []model.ShoppingSuggestion `json:"suggestions"`
}

func (a *Analyzer) enrich(ctx context.Context, analysis model.WardrobeAnalysis, gaps []string, occasionFilter string) ([]model.ShoppingSuggestion, error) {
	var guidance []string
	if a.retriever != nil {
		focus := occasionFilter
		if focus == "" {
			focus = "versatile"
		}
		guidance = a.retriever.Retrieve(ctx, fmt.Sprintf("essential wardrobe items for %s style", focus), retrievedPassages)
	}

	prompt := buildShoppingPrompt(analysis, gaps, occasionFilter, guidance)

	response, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, err := common.ParseJSON[suggestionsResponse](response)
	if err != nil {
		return nil, err
	}

	valid := result.Suggestions[:0]
	for _, s := range result.Suggestions {
		if model.PriorityRank(s.Priority) > model.PriorityRank(model.PriorityLow) {
			s.Priority = model.PriorityLow
		}
		if s.Item != "" {
			valid = append(valid, s)
		}
	}
	return valid, nil
}

const retrievedPassages = 3

func plural(category string) string {
	if strings.HasSuffix(category, "s") {
		return category
	}
	return category + "s"
}
