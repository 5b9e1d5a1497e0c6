package ports

import "context"

// WeatherPort defines the interface for the external temperature provider
type WeatherPort interface {
	// CurrentTemperature returns the ambient temperature in degrees C at
	// the given coordinates
	CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error)
}
