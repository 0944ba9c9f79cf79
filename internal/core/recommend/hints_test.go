package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manntalati/smart-wardrobe/internal/weather"
)

func TestStyleHintsTemperatureBands(t *testing.T) {
	cases := []struct {
		name  string
		tempF float64
		want  string
	}{
		{"very hot", 95, "Very hot"},
		{"very hot boundary", 85, "Very hot"},
		{"warm", 72, "Warm weather"},
		{"warm boundary", 70, "Warm weather"},
		{"mild", 60, "Mild/cool"},
		{"mild boundary", 55, "Mild/cool"},
		{"chilly", 45, "Chilly"},
		{"chilly boundary", 40, "Chilly"},
		{"cold", 20, "Cold weather"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hints := StyleHints(&weather.Snapshot{TemperatureF: tc.tempF, Main: "Clear"})
			assert.NotEmpty(t, hints)
			assert.Contains(t, hints[0], tc.want)
		})
	}
}

func TestStyleHintsConditions(t *testing.T) {
	for _, main := range []string{"Rain", "Drizzle", "Thunderstorm"} {
		hints := StyleHints(&weather.Snapshot{TemperatureF: 60, Main: main})
		assert.Contains(t, hints, "Rainy — waterproof jacket or umbrella recommended", main)
	}

	hints := StyleHints(&weather.Snapshot{TemperatureF: 30, Main: "Snow"})
	assert.Contains(t, hints, "Snowy — insulated, waterproof boots and heavy coat essential")

	hints = StyleHints(&weather.Snapshot{TemperatureF: 60, Main: "Clouds"})
	for _, h := range hints {
		assert.NotContains(t, h, "Rainy")
		assert.NotContains(t, h, "Snowy")
	}
}

func TestStyleHintsWind(t *testing.T) {
	calm := StyleHints(&weather.Snapshot{TemperatureF: 60, Main: "Clear", WindMPH: 15})
	windy := StyleHints(&weather.Snapshot{TemperatureF: 60, Main: "Clear", WindMPH: 16})
	assert.Len(t, windy, len(calm)+1)
	assert.Contains(t, windy[len(windy)-1], "Windy")
}

func TestStyleHintsNilSnapshot(t *testing.T) {
	assert.Nil(t, StyleHints(nil))
}

func TestSeasonCompatible(t *testing.T) {
	hot := &weather.Snapshot{TemperatureF: 80}
	cold := &weather.Snapshot{TemperatureF: 40}

	assert.False(t, seasonCompatible("fall/winter", hot))
	assert.True(t, seasonCompatible("fall/winter", cold))
	assert.True(t, seasonCompatible("spring/summer", hot))
	assert.False(t, seasonCompatible("spring/summer", cold))
	assert.True(t, seasonCompatible("all-season", hot))
	assert.True(t, seasonCompatible("all-season", cold))
	assert.True(t, seasonCompatible("fall/winter", nil))
}
