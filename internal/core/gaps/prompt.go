package gaps

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/manntalati/smart-wardrobe/internal/core/model"
)

func buildShoppingPrompt(analysis model.WardrobeAnalysis, gaps []string, occasionFilter string, guidance []string) string {
	categories, _ := json.Marshal(analysis.Categories)
	colors, _ := json.Marshal(analysis.Colors)
	seasons, _ := json.Marshal(analysis.Seasons)

	var gapLines strings.Builder
	for _, g := range gaps {
		fmt.Fprintf(&gapLines, "- %s\n", g)
	}

	var focusSection string
	if occasionFilter != "" {
		focusSection = fmt.Sprintf("FOCUS: %s wardrobe\n", occasionFilter)
	}

	var guidanceSection string
	if len(guidance) > 0 {
		guidanceSection = "FASHION GUIDANCE:\n" + strings.Join(guidance, "\n") + "\n"
	}

	return fmt.Sprintf(`You are a personal fashion advisor. Based on the user's current wardrobe analysis and identified gaps, suggest specific items to purchase.

CURRENT WARDROBE ANALYSIS:
- Total items: %d
- Categories: %s
- Colors: %s
- Seasons: %s

IDENTIFIED GAPS:
%s
%s%s
Suggest 3-5 specific items to purchase. For each, explain why it would complement the existing wardrobe.

Respond in valid JSON format ONLY:
{
  "suggestions": [
    {
      "item": "Item description (e.g., 'Navy wool blazer')",
      "category": "category name",
      "reason": "Why this item fills a gap in the wardrobe",
      "priority": "high/medium/low",
      "estimated_price_range": "$XX - $XX"
    }
  ]
}`, analysis.TotalItems, categories, colors, seasons, gapLines.String(), focusSection, guidanceSection)
}
