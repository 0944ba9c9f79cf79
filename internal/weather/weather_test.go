package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"name": "Chicago",
	"main": {"temp": 72.38, "feels_like": 71.9, "humidity": 65},
	"weather": [{"main": "Clouds", "description": "scattered clouds"}],
	"wind": {"speed": 12.66}
}`

func TestCurrentParsesResponse(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"q":     r.URL.Query().Get("q"),
			"appid": r.URL.Query().Get("appid"),
			"units": r.URL.Query().Get("units"),
		}
		w.Write([]byte(samplePayload))
	}))
	defer ts.Close()

	c := NewClient("test-key", ts.URL)
	snap, err := c.Current(context.Background(), "Chicago")
	require.NoError(t, err)

	assert.Equal(t, "Chicago", snap.City)
	assert.Equal(t, 72.0, snap.TemperatureF)
	assert.Equal(t, 72.0, snap.FeelsLikeF)
	assert.Equal(t, 65, snap.Humidity)
	assert.Equal(t, "Clouds", snap.Main)
	assert.Equal(t, "scattered clouds", snap.Description)
	assert.Equal(t, 12.7, snap.WindMPH)

	assert.Equal(t, "Chicago", gotQuery["q"])
	assert.Equal(t, "test-key", gotQuery["appid"])
	assert.Equal(t, "imperial", gotQuery["units"])
}

func TestCurrentMissingKey(t *testing.T) {
	c := NewClient("", "")
	_, err := c.Current(context.Background(), "Chicago")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrentServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "city not found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient("test-key", ts.URL)
	_, err := c.Current(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrentMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	c := NewClient("test-key", ts.URL)
	_, err := c.Current(context.Background(), "Chicago")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrentEmptyWeatherArray(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": "Chicago", "main": {"temp": 70}, "weather": []}`))
	}))
	defer ts.Close()

	c := NewClient("test-key", ts.URL)
	_, err := c.Current(context.Background(), "Chicago")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCurrentUnreachableHost(t *testing.T) {
	c := NewClient("test-key", "http://127.0.0.1:1/weather")
	_, err := c.Current(context.Background(), "Chicago")
	assert.ErrorIs(t, err, ErrUnavailable)
}
