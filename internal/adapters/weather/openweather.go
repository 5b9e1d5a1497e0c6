package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
)

// Adapter implements the WeatherPort interface against an
// OpenWeather-style current-conditions endpoint
type Adapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// New creates a new weather adapter
func New(cfg config.WeatherConfig) ports.WeatherPort {
	return &Adapter{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// currentConditions is the subset of the provider response we consume
type currentConditions struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// CurrentTemperature returns the ambient temperature in degrees C at the
// given coordinates
func (a *Adapter) CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("appid", a.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var conditions currentConditions
	if err := json.NewDecoder(resp.Body).Decode(&conditions); err != nil {
		return 0, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return conditions.Main.Temp, nil
}
