package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/manntalati/smart-wardrobe/internal/core/classifier"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
)

// colorLimit is the "rule of three": combinations with more distinct colors
// are penalized.
const colorLimit = 3

// colorPenalty is subtracted per color above the limit.
const colorPenalty = 0.15

// RuleComposer assembles outfits deterministically: dresses stand alone,
// otherwise top+bottom pairs, each optionally completed with shoes and, in
// cold weather, outerwear. No randomness anywhere — repeated calls over the
// same snapshot produce the same outfits in the same order.
type RuleComposer struct {
	Taxonomy *classifier.Taxonomy
}

func NewRuleComposer(tax *classifier.Taxonomy) *RuleComposer {
	return &RuleComposer{Taxonomy: tax}
}

type candidate struct {
	outfit model.OutfitSuggestion
	score  float64
}

func (rc *RuleComposer) Compose(_ context.Context, req Request) ([]model.OutfitSuggestion, error) {
	eligible := make([]model.Item, 0, len(req.Items))
	for _, it := range req.Items {
		if !it.HasOccasion(req.Occasion) {
			continue
		}
		if !seasonCompatible(it.Season, req.Weather) {
			continue
		}
		eligible = append(eligible, it)
	}
	// Stable input order regardless of snapshot order.
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })

	classes := rc.Taxonomy.Classes
	var tops, bottoms, shoes, outerwear, dresses []model.Item
	for _, it := range eligible {
		switch {
		case classifier.InClass(classes.Dresses, it.Category):
			dresses = append(dresses, it)
		case classifier.InClass(classes.Tops, it.Category):
			tops = append(tops, it)
		case classifier.InClass(classes.Bottoms, it.Category):
			bottoms = append(bottoms, it)
		case classifier.InClass(classes.Shoes, it.Category):
			shoes = append(shoes, it)
		case classifier.InClass(classes.Outerwear, it.Category):
			outerwear = append(outerwear, it)
		}
	}

	cold := req.Weather != nil && req.Weather.TemperatureF < mildF

	var candidates []candidate

	for _, dress := range dresses {
		pieces := []model.Item{dress}
		if len(shoes) > 0 {
			pieces = append(pieces, shoes[0])
		}
		if cold && len(outerwear) > 0 {
			pieces = append(pieces, outerwear[0])
		}
		candidates = append(candidates, candidate{
			outfit: model.OutfitSuggestion{
				Name:        fmt.Sprintf("%s %s Look", title(dress.Color), title(dress.Category)),
				Items:       itemIDs(pieces),
				Description: fmt.Sprintf("A %s %s %s — simple and elegant for %s.", dress.Color, dress.Pattern, dress.Category, req.Occasion),
				StyleNotes:  "Add accessories to elevate the look.",
			},
			score: scoreCombination(pieces),
		})
	}

	for _, top := range tops {
		for bi, bottom := range bottoms {
			pieces := []model.Item{top, bottom}
			notes := "Classic combination that works well together."
			if len(shoes) > 0 {
				pieces = append(pieces, shoes[bi%len(shoes)])
			}
			if cold && len(outerwear) > 0 {
				ow := outerwear[0]
				pieces = append(pieces, ow)
				notes += fmt.Sprintf(" Layer with the %s %s for warmth.", ow.Color, ow.Category)
			}
			candidates = append(candidates, candidate{
				outfit: model.OutfitSuggestion{
					Name:        fmt.Sprintf("%s %s + %s %s", title(top.Color), title(top.Category), title(bottom.Color), title(bottom.Category)),
					Items:       itemIDs(pieces),
					Description: fmt.Sprintf("Pair the %s %s with %s %s for a %s look.", top.Color, top.Category, bottom.Color, bottom.Category, req.Occasion),
					StyleNotes:  notes,
				},
				score: scoreCombination(pieces),
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].outfit.Items[0] < candidates[j].outfit.Items[0]
	})

	n := req.NumOutfits
	if n <= 0 {
		n = 3
	}
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	outfits := make([]model.OutfitSuggestion, len(candidates))
	for i, c := range candidates {
		outfits[i] = c.outfit
	}
	return outfits, nil
}

// scoreCombination ranks a combination by the mean confidence of its pieces
// minus a penalty for every distinct color beyond the rule of three.
func scoreCombination(pieces []model.Item) float64 {
	var conf float64
	colors := make(map[string]bool)
	for _, p := range pieces {
		conf += p.Confidence
		colors[p.Color] = true
	}
	score := conf / float64(len(pieces))
	if extra := len(colors) - colorLimit; extra > 0 {
		score -= colorPenalty * float64(extra)
	}
	return score
}

func itemIDs(pieces []model.Item) []int64 {
	ids := make([]int64, len(pieces))
	for i, p := range pieces {
		ids[i] = p.ID
	}
	return ids
}

func title(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
