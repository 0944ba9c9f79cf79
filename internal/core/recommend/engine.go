// Package recommend synthesizes outfit suggestions from the catalog
// snapshot, weather context, occasion/style intent and retrieved styling
// knowledge. A generative backend is optional: when it is absent or fails,
// the engine falls back to the deterministic rule-based composer, so the
// user sees fewer AI-flavored suggestions but never an error.
package recommend

import (
	"context"
	"fmt"
	"log"

	"github.com/manntalati/smart-wardrobe/internal/core/classifier"
	"github.com/manntalati/smart-wardrobe/internal/core/knowledge"
	"github.com/manntalati/smart-wardrobe/internal/core/model"
	"github.com/manntalati/smart-wardrobe/internal/llm"
	"github.com/manntalati/smart-wardrobe/internal/weather"
)

const (
	emptyWardrobeMessage = "Your wardrobe is empty! Upload some clothing items first."
	fallbackMessage      = "These are rule-based suggestions. Configure a generative backend for AI-powered styling."
	retrievedPassages    = 3
)

type Recommendation struct {
	Outfits  []model.OutfitSuggestion `json:"outfits"`
	Message  string                   `json:"message,omitempty"`
	Weather  *weather.Snapshot        `json:"weather,omitempty"`
	Occasion string                   `json:"occasion"`
}

type Engine struct {
	generative *GenerativeComposer
	rules      *RuleComposer
	retriever  *knowledge.Retriever
}

// NewEngine wires the two composers. A nil LLM client means generative mode
// is never attempted; a nil retriever means recommendations proceed
// ungrounded.
func NewEngine(client llm.LLMClient, retriever *knowledge.Retriever, tax *classifier.Taxonomy) *Engine {
	e := &Engine{
		rules:     NewRuleComposer(tax),
		retriever: retriever,
	}
	if client != nil {
		e.generative = NewGenerativeComposer(client)
	}
	return e
}

// Recommend produces up to numOutfits suggestions for the snapshot. It never
// errors on an empty wardrobe or a failing backend; the message field
// explains any degradation.
func (e *Engine) Recommend(ctx context.Context, items []model.Item, w *weather.Snapshot, occasion, style string, numOutfits int) Recommendation {
	rec := Recommendation{Weather: w, Occasion: occasion}

	if len(items) == 0 {
		rec.Outfits = []model.OutfitSuggestion{}
		rec.Message = emptyWardrobeMessage
		return rec
	}

	req := Request{
		Items:      items,
		Weather:    w,
		Occasion:   occasion,
		Style:      style,
		NumOutfits: numOutfits,
	}
	if e.retriever != nil {
		req.Knowledge = e.retriever.Retrieve(ctx, ragQuery(w, occasion, style), retrievedPassages)
	}

	if e.generative != nil {
		outfits, err := e.generative.Compose(ctx, req)
		if err == nil {
			rec.Outfits = outfits
			return rec
		}
		log.Printf("Generative composer failed, falling back to rules: %v", err)
	}

	outfits, _ := e.rules.Compose(ctx, req) // rule composer cannot fail
	rec.Outfits = outfits
	rec.Message = fallbackMessage
	if len(outfits) == 0 {
		rec.Message = fmt.Sprintf("No suitable combinations found for %q with the current wardrobe and weather. Add more items for better suggestions.", occasion)
	}
	return rec
}

func ragQuery(w *weather.Snapshot, occasion, style string) string {
	q := "outfit for " + occasion
	if w != nil {
		q += fmt.Sprintf(" in %s weather, %.0f°F", w.Description, w.TemperatureF)
	}
	if style != "" {
		q += ", " + style + " style"
	}
	return q
}
