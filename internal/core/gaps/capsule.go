package gaps

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Essential is one row of the capsule wardrobe minimum-coverage table: how
// many of a category a rounded wardrobe is expected to hold, which occasion
// group it serves, and a static price band for the shopping suggestion.
type Essential struct {
	Category   string `toml:"category"`
	Group      string `toml:"group"`
	Min        int    `toml:"min"`
	PriceRange string `toml:"price_range"`
}

// Capsule is the fixed gap-detection baseline, loaded once as data so
// coverage changes never require touching analyzer code.
type Capsule struct {
	NeutralColors []string    `toml:"neutral_colors"`
	Essentials    []Essential `toml:"essential"`
}

func LoadCapsule(path string) (*Capsule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read capsule file '%s': %w", path, err)
	}

	var c Capsule
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse capsule TOML: %w", err)
	}
	if len(c.Essentials) == 0 {
		return nil, fmt.Errorf("capsule table '%s' has no essential entries", path)
	}
	for _, e := range c.Essentials {
		if e.Category == "" || e.Min <= 0 {
			return nil, fmt.Errorf("capsule entry %+v: category and positive min required", e)
		}
	}
	return &c, nil
}

// ForGroup returns the essentials restricted to an occasion group, or the
// whole table when the group is unknown or empty.
func (c *Capsule) ForGroup(group string) []Essential {
	if group == "" {
		return c.Essentials
	}
	var out []Essential
	for _, e := range c.Essentials {
		if e.Group == group {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return c.Essentials
	}
	return out
}
