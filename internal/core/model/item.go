package model

import "time"

// AttributeSet is the classifier's verdict for one image: a label per
// taxonomy dimension plus the confidence of the chosen category label.
type AttributeSet struct {
	Category     string   `json:"category"`
	Color        string   `json:"color"`
	Pattern      string   `json:"pattern"`
	Season       string   `json:"season"`
	Fabric       string   `json:"fabric"`
	OccasionTags []string `json:"occasion_tags"`
	Confidence   float64  `json:"confidence"`
}

// Item is a catalog entry. Identity is assigned by the storage collaborator
// and immutable afterwards. The embedding travels with the item so the
// vector index can be rebuilt from a catalog snapshot on startup.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Color        string    `json:"color"`
	Pattern      string    `json:"pattern"`
	Season       string    `json:"season"`
	Fabric       string    `json:"fabric"`
	OccasionTags []string  `json:"occasion_tags"`
	ImagePath    string    `json:"image_path,omitempty"`
	Confidence   float64   `json:"confidence,omitempty"`
	Embedding    []float32 `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasOccasion reports whether the item is tagged for the given occasion.
// Untagged items match everything: they are manual entries whose suitability
// is unknown, and excluding them would hide them from every recommendation.
func (it Item) HasOccasion(occasion string) bool {
	if len(it.OccasionTags) == 0 {
		return true
	}
	for _, tag := range it.OccasionTags {
		if tag == occasion {
			return true
		}
	}
	return false
}
