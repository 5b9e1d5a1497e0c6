package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
	"freshroute/internal/domain/apperrors"
)

// temperatureResolver wraps the weather collaborator with the configured
// timeout and fallback policy. Whether a provider outage is substituted
// with a default temperature or surfaced as an error is a deliberate
// configuration choice, never an implicit default.
type temperatureResolver struct {
	weather ports.WeatherPort
	cfg     config.WeatherConfig
	logger  *slog.Logger
}

func (r temperatureResolver) resolve(ctx context.Context, lat, lon float64) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	temp, err := r.weather.CurrentTemperature(ctx, lat, lon)
	if err == nil {
		return temp, nil
	}

	if r.cfg.Policy == config.FallbackDefaultTemp {
		r.logger.Warn("Weather provider failed, using default temperature",
			"error", err, "default_temp_c", r.cfg.DefaultTempC)
		return r.cfg.DefaultTempC, nil
	}
	return 0, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
}
