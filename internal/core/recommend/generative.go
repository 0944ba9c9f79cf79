package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/manntalati/smart-wardrobe/internal/core/common"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/llm"
)

// GenerativeComposer prompts an LLM with the wardrobe summary, weather
// hints, occasion and retrieved styling knowledge, and asks for strict JSON.
// Suggestions referencing identities outside the snapshot are dropped, never
// surfaced.
type GenerativeComposer struct {
	LLM llm.LLMClient
}

func NewGenerativeComposer(client llm.LLMClient) *GenerativeComposer {
	return &GenerativeComposer{LLM: client}
}

type outfitsResponse struct {
	Outfits []model.OutfitSuggestion `json:"outfits"`
}

func (gc *GenerativeComposer) Compose(ctx context.Context, req Request) ([]model.OutfitSuggestion, error) {
	prompt := buildOutfitPrompt(req)

	response, err := gc.LLM.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("outfit generation: %w", err)
	}

	result, err := common.ParseJSON[outfitsResponse](response)
	if err != nil {
		return nil, fmt.Errorf("outfit generation: %w", err)
	}

	known := make(map[int64]bool, len(req.Items))
	for _, it := range req.Items {
		known[it.ID] = true
	}

	outfits := make([]model.OutfitSuggestion, 0, len(result.Outfits))
	for _, o := range result.Outfits {
		if len(o.Items) == 0 {
			continue
		}
		valid := true
		for _, id := range o.Items {
			if !known[id] {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		outfits = append(outfits, o)
		if req.NumOutfits > 0 && len(outfits) == req.NumOutfits {
			break
		}
	}
	return outfits, nil
}

// WardrobeSummary renders catalog items as attribute lines for prompts.
// Images never reach the LLM, only their classified attributes.
func WardrobeSummary(items []model.Item) string {
	var b strings.Builder
	for _, it := range items {
		tags := strings.Join(it.OccasionTags, ", ")
		if it.Name != "" {
			fmt.Fprintf(&b, "- ID:%d %q | %s %s %s | %s | Season: %s | Occasions: %s\n",
				it.ID, it.Name, it.Color, it.Pattern, it.Category, it.Fabric, it.Season, tags)
		} else {
			fmt.Fprintf(&b, "- ID:%d | %s %s %s | %s | Season: %s | Occasions: %s\n",
				it.ID, it.Color, it.Pattern, it.Category, it.Fabric, it.Season, tags)
		}
	}
	return b.String()
}

func buildOutfitPrompt(req Request) string {
	var weatherSection string
	if req.Weather != nil {
		weatherSection = fmt.Sprintf(`
Current Weather in %s:
- Temperature: %.0f°F (feels like %.0f°F)
- Conditions: %s
- Humidity: %d%%
- Style hints: %s
`, req.Weather.City, req.Weather.TemperatureF, req.Weather.FeelsLikeF,
			req.Weather.Description, req.Weather.Humidity,
			strings.Join(StyleHints(req.Weather), "; "))
	}

	var fashionSection string
	if len(req.Knowledge) > 0 {
		fashionSection = "Fashion guidance:\n" + strings.Join(req.Knowledge, "\n---\n")
	}

	var styleSection string
	if req.Style != "" {
		styleSection = "\nUser's style preference: " + req.Style
	}

	n := req.NumOutfits
	if n <= 0 {
		n = 3
	}

	return fmt.Sprintf(`You are an expert fashion stylist. Based on the user's wardrobe, weather conditions, and occasion, suggest %d complete outfit combinations.

WARDROBE ITEMS:
%s
OCCASION: %s
%s
%s
%s

IMPORTANT RULES:
1. Only use items from the wardrobe list above (reference by their ID).
2. Each outfit should be a complete look (top, bottom, shoes at minimum).
3. Consider weather appropriateness, color coordination, and occasion suitability.
4. Provide a brief explanation for why each outfit works.

Respond in valid JSON format ONLY. Use this exact structure:
{
  "outfits": [
    {
      "name": "Outfit Name",
      "items": [1, 3, 7],
      "description": "A brief description of the outfit and why it works for this occasion.",
      "style_notes": "Specific styling tip for this combination."
    }
  ]
}`, n, WardrobeSummary(req.Items), req.Occasion, weatherSection, fashionSection, styleSection)
}
