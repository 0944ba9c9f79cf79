// Package weather fetches current conditions from OpenWeatherMap. Failures
// of any kind collapse into ErrUnavailable: weather is advisory context for
// recommendations, never a reason to fail a request.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

var ErrUnavailable = errors.New("weather service unavailable")

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Snapshot is the normalized weather context consumed by the recommendation
// engine. Temperatures are Fahrenheit, wind is mph (OpenWeatherMap imperial
// units, matching the style hint bands).
type Snapshot struct {
	City         string  `json:"city"`
	TemperatureF float64 `json:"temperature_f"`
	FeelsLikeF   float64 `json:"feels_like_f"`
	Humidity     int     `json:"humidity"`
	Description  string  `json:"description"`
	Main         string  `json:"main"`
	WindMPH      float64 `json:"wind_speed"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Current fetches the weather for a city. Missing API key, network errors,
// non-200 responses and malformed bodies all return ErrUnavailable.
func (c *Client) Current(ctx context.Context, city string) (*Snapshot, error) {
	if c == nil || c.apiKey == "" {
		return nil, ErrUnavailable
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "imperial")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Name string `json:"name"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(body.Weather) == 0 {
		return nil, fmt.Errorf("%w: empty weather payload", ErrUnavailable)
	}

	return &Snapshot{
		City:         body.Name,
		TemperatureF: math.Round(body.Main.Temp),
		FeelsLikeF:   math.Round(body.Main.FeelsLike),
		Humidity:     body.Main.Humidity,
		Description:  body.Weather[0].Description,
		Main:         body.Weather[0].Main,
		WindMPH:      math.Round(body.Wind.Speed*10) / 10,
	}, nil
}
