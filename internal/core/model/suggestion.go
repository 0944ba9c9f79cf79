package model

type OutfitSuggestion struct {
	Name        string  `json:"name"`
	Items       []int64 `json:"items"`
	Description string  `json:"description"`
	StyleNotes  string  `json:"style_notes"`
}

// Priority values are ordered: high outranks medium outranks low.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// PriorityRank maps a priority to its sort order (lower sorts first).
// Unknown values sort last.
func PriorityRank(p string) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

type ShoppingSuggestion struct {
	Item                string `json:"item"`
	Category            string `json:"category"`
	Reason              string `json:"reason"`
	Priority            string `json:"priority"`
	EstimatedPriceRange string `json:"estimated_price_range"`
}

// WardrobeAnalysis is the distributional summary the gap analyzer computes
// over a catalog snapshot.
type WardrobeAnalysis struct {
	TotalItems int            `json:"total_items"`
	Categories map[string]int `json:"categories"`
	Colors     map[string]int `json:"colors"`
	Seasons    map[string]int `json:"seasons"`
	Fabrics    map[string]int `json:"fabrics"`
	Occasions  map[string]int `json:"occasions"`
	Message    string         `json:"message,omitempty"`
}

type GapReport struct {
	Gaps        []string             `json:"gaps"`
	Suggestions []ShoppingSuggestion `json:"suggestions"`
	Analysis    WardrobeAnalysis     `json:"analysis"`
}
