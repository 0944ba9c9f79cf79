package classifier

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Dimension is one attribute axis of the taxonomy. Labels are the phrases
// scored against the image; Values, when present, are the cleaned-up forms
// stored on the item (e.g. "fall/winter warm clothing" -> "fall/winter").
type Dimension struct {
	Prefix    string   `toml:"prefix"`
	Labels    []string `toml:"labels"`
	Values    []string `toml:"values"`
	Threshold float64  `toml:"threshold"`
}

// Value returns the stored form of label i.
func (d Dimension) Value(i int) string {
	if len(d.Values) == len(d.Labels) {
		return d.Values[i]
	}
	return d.Labels[i]
}

// Prompt returns the scoring phrase for label i, e.g.
// "a photo of a t-shirt" for prefix "a photo of a ".
func (d Dimension) Prompt(i int) string {
	return d.Prefix + d.Labels[i]
}

// Taxonomy is the fixed, versioned label vocabulary. It is immutable at run
// time; changing it means re-classifying existing items or accepting drift.
type Taxonomy struct {
	Version  string    `toml:"version"`
	Category Dimension `toml:"category"`
	Color    Dimension `toml:"color"`
	Pattern  Dimension `toml:"pattern"`
	Season   Dimension `toml:"season"`
	Fabric   Dimension `toml:"fabric"`
	Occasion Dimension `toml:"occasion"`

	// Classes group categories for outfit composition and gap analysis.
	Classes struct {
		Tops      []string `toml:"tops"`
		Bottoms   []string `toml:"bottoms"`
		Shoes     []string `toml:"shoes"`
		Outerwear []string `toml:"outerwear"`
		Dresses   []string `toml:"dresses"`
	} `toml:"classes"`
}

func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file '%s': %w", path, err)
	}

	var tax Taxonomy
	if err := toml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy TOML: %w", err)
	}

	if err := tax.validate(); err != nil {
		return nil, err
	}
	return &tax, nil
}

func (t *Taxonomy) validate() error {
	dims := map[string]Dimension{
		"category": t.Category,
		"color":    t.Color,
		"pattern":  t.Pattern,
		"season":   t.Season,
		"fabric":   t.Fabric,
		"occasion": t.Occasion,
	}
	for name, d := range dims {
		if len(d.Labels) == 0 {
			return fmt.Errorf("taxonomy dimension %q has no labels", name)
		}
		if len(d.Values) > 0 && len(d.Values) != len(d.Labels) {
			return fmt.Errorf("taxonomy dimension %q: %d values for %d labels", name, len(d.Values), len(d.Labels))
		}
	}
	return nil
}

// InClass reports whether category belongs to the named class list.
func InClass(class []string, category string) bool {
	for _, c := range class {
		if c == category {
			return true
		}
	}
	return false
}
