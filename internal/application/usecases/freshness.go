package usecases

import (
	"context"
	"log/slog"
	"time"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
	"freshroute/internal/domain/models"
	"freshroute/internal/domain/spoilage"
)

// FreshnessUseCase computes live freshness readings for shipments
type FreshnessUseCase struct {
	storage  ports.StoragePort
	cache    ports.CachePort
	model    *spoilage.Model
	resolver temperatureResolver
	ttl      time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewFreshnessUseCase creates a new FreshnessUseCase
func NewFreshnessUseCase(storage ports.StoragePort, cache ports.CachePort, weather ports.WeatherPort, weatherCfg config.WeatherConfig, cacheCfg config.CacheConfig, logger *slog.Logger, now func() time.Time) *FreshnessUseCase {
	if now == nil {
		now = time.Now
	}
	return &FreshnessUseCase{
		storage:  storage,
		cache:    cache,
		model:    spoilage.New(now),
		resolver: temperatureResolver{weather: weather, cfg: weatherCfg, logger: logger},
		ttl:      time.Duration(cacheCfg.FreshnessTTLSeconds) * time.Second,
		logger:   logger,
		now:      now,
	}
}

// GetFreshness returns the current freshness reading for a shipment at
// the given coordinates. Readings are cached per shipment with a bounded
// staleness; within that bound the cached value is served as-is, even for
// a request with different coordinates. The reading's Lat/Lon carry the
// coordinates it was computed for.
func (uc *FreshnessUseCase) GetFreshness(ctx context.Context, shipmentID string, lat, lon float64) (*models.FreshnessReading, error) {
	if cached, err := uc.cache.GetFreshness(ctx, shipmentID); err != nil {
		uc.logger.Warn("Freshness cache lookup failed", "error", err, "shipment_id", shipmentID)
	} else if cached != nil {
		return cached, nil
	}

	shipment, err := uc.storage.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	temp, err := uc.resolver.resolve(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	freshness := uc.model.Freshness(shipment.DecayConstant, temp, shipment.HarvestTimestamp)

	reading := models.FreshnessReading{
		ShipmentID:   shipment.ID,
		ProduceName:  shipment.ProduceName,
		Freshness:    freshness,
		AmbientTempC: temp,
		Risk:         models.RiskForFreshness(freshness),
		Lat:          lat,
		Lon:          lon,
		ComputedAt:   uc.now(),
	}

	if err := uc.cache.SetFreshness(ctx, reading, uc.ttl); err != nil {
		uc.logger.Warn("Failed to cache freshness reading", "error", err, "shipment_id", shipmentID)
	}

	return &reading, nil
}
