package recommend

import "github.com/manntalati/smart-wardrobe/internal/weather"

// Temperature bands for style hints and season filtering, in Fahrenheit.
const (
	veryHotF = 85
	warmF    = 70
	mildF    = 55
	chillyF  = 40
)

const windyMPH = 15

// StyleHints maps a weather snapshot to actionable hint strings. The mapping
// is a fixed table, independent of any generative backend, so hints are
// identical across generative and rule-based modes.
func StyleHints(w *weather.Snapshot) []string {
	if w == nil {
		return nil
	}
	var hints []string

	switch {
	case w.TemperatureF >= veryHotF:
		hints = append(hints,
			"Very hot — wear lightweight, breathable fabrics like linen or cotton",
			"Opt for light colors to reflect heat",
			"Shorts, tank tops, or summer dresses recommended")
	case w.TemperatureF >= warmF:
		hints = append(hints,
			"Warm weather — light layers, t-shirts, and casual wear",
			"No heavy jacket needed")
	case w.TemperatureF >= mildF:
		hints = append(hints,
			"Mild/cool — consider a light jacket or cardigan",
			"Layering is ideal for this temperature")
	case w.TemperatureF >= chillyF:
		hints = append(hints,
			"Chilly — wear a warm jacket or coat",
			"Consider sweaters or hoodies for warmth")
	default:
		hints = append(hints,
			"Cold weather — heavy coat, scarf, and warm layers recommended",
			"Wool, fleece, or down jackets ideal")
	}

	switch w.Main {
	case "Rain", "Drizzle", "Thunderstorm":
		hints = append(hints,
			"Rainy — waterproof jacket or umbrella recommended",
			"Avoid suede or delicate fabrics",
			"Waterproof boots or shoes advisable")
	case "Snow":
		hints = append(hints,
			"Snowy — insulated, waterproof boots and heavy coat essential",
			"Layered warm clothing recommended")
	}

	if w.WindMPH > windyMPH {
		hints = append(hints, "Windy — a windbreaker or structured jacket recommended")
	}

	return hints
}

// seasonCompatible filters items against the weather band: heavy fall/winter
// pieces are excluded when it is warm, lightweight spring/summer pieces when
// it is cold. All-season items always pass, as does everything when no
// weather context is available.
func seasonCompatible(season string, w *weather.Snapshot) bool {
	if w == nil {
		return true
	}
	switch season {
	case "fall/winter":
		return w.TemperatureF < warmF
	case "spring/summer":
		return w.TemperatureF >= mildF
	}
	return true
}
