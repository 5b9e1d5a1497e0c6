package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
	"freshroute/internal/domain/models"
	"freshroute/internal/domain/recommend"
	"freshroute/internal/domain/spoilage"
)

// MarketUseCase handles market catalog and recommendation operations
type MarketUseCase struct {
	storage  ports.StoragePort
	model    *spoilage.Model
	resolver temperatureResolver
	opts     recommend.Options
	logger   *slog.Logger
}

// NewMarketUseCase creates a new MarketUseCase
func NewMarketUseCase(storage ports.StoragePort, weather ports.WeatherPort, weatherCfg config.WeatherConfig, recCfg config.RecommenderConfig, logger *slog.Logger, now func() time.Time) *MarketUseCase {
	return &MarketUseCase{
		storage:  storage,
		model:    spoilage.New(now),
		resolver: temperatureResolver{weather: weather, cfg: weatherCfg, logger: logger},
		opts: recommend.Options{
			TruckSpeedKmh:      recCfg.TruckSpeedKmh,
			DecayPerTravelHour: recCfg.DecayPerTravelHour,
		},
		logger: logger,
	}
}

// Recommend ranks every known market by expected revenue for a shipment.
// The shipment's current freshness is computed from the temperature at
// its start coordinates, subject to the configured fallback policy.
func (uc *MarketUseCase) Recommend(ctx context.Context, shipmentID string, lat, lon float64) (*models.RecommendationResult, error) {
	shipment, err := uc.storage.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	markets, err := uc.storage.ListMarkets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list markets: %w", err)
	}

	temp, err := uc.resolver.resolve(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	currentFreshness := uc.model.Freshness(shipment.DecayConstant, temp, shipment.HarvestTimestamp)

	result := recommend.Rank(*shipment, currentFreshness, markets, uc.opts)

	uc.logger.Info("Markets ranked", "shipment_id", shipmentID, "markets", len(markets), "current_freshness", currentFreshness)
	return &result, nil
}

// List returns the market catalog
func (uc *MarketUseCase) List(ctx context.Context) ([]models.Market, error) {
	return uc.storage.ListMarkets(ctx)
}

// Seed replaces the market catalog with the built-in demo markets
func (uc *MarketUseCase) Seed(ctx context.Context) (int, error) {
	markets := SeedMarkets()
	if err := uc.storage.ReplaceMarkets(ctx, markets); err != nil {
		return 0, fmt.Errorf("failed to seed markets: %w", err)
	}
	uc.logger.Info("Markets seeded", "count", len(markets))
	return len(markets), nil
}

// SeedMarkets returns the built-in demo market catalog
func SeedMarkets() []models.Market {
	return []models.Market{
		{
			Name:       "Koyambedu Market, Chennai",
			DistanceKm: 12,
			Prices: models.PriceTable{
				"Tomato": 35, "Apple": 180, "Banana": 45, "Mango": 120, "Grapes": 90,
				"Spinach": 40, "Broccoli": 80, "Carrot": 50, "Potato": 30, "Strawberry": 250,
			},
			DemandLevel: models.DemandHigh,
			Lat:         13.0694,
			Lon:         80.1948,
		},
		{
			Name:       "Madurai Mango Market",
			DistanceKm: 45,
			Prices: models.PriceTable{
				"Tomato": 30, "Apple": 160, "Banana": 40, "Mango": 150, "Grapes": 85,
				"Spinach": 35, "Broccoli": 70, "Carrot": 45, "Potato": 25, "Strawberry": 220,
			},
			DemandLevel: models.DemandMedium,
			Lat:         9.9252,
			Lon:         78.1198,
		},
		{
			Name:       "Ernakulam Market, Kochi",
			DistanceKm: 30,
			Prices: models.PriceTable{
				"Tomato": 38, "Apple": 190, "Banana": 50, "Mango": 130, "Grapes": 95,
				"Spinach": 45, "Broccoli": 85, "Carrot": 55, "Potato": 32, "Strawberry": 280,
			},
			DemandLevel: models.DemandHigh,
			Lat:         9.9816,
			Lon:         76.2999,
		},
		{
			Name:       "Mysore APMC Yard",
			DistanceKm: 55,
			Prices: models.PriceTable{
				"Tomato": 28, "Apple": 170, "Banana": 38, "Mango": 110, "Grapes": 80,
				"Spinach": 30, "Broccoli": 65, "Carrot": 42, "Potato": 22, "Strawberry": 200,
			},
			DemandLevel: models.DemandLow,
			Lat:         12.2958,
			Lon:         76.6394,
		},
		{
			Name:       "Visakhapatnam Rythu Bazaar",
			DistanceKm: 70,
			Prices: models.PriceTable{
				"Tomato": 42, "Apple": 200, "Banana": 55, "Mango": 140, "Grapes": 100,
				"Spinach": 50, "Broccoli": 90, "Carrot": 60, "Potato": 35, "Strawberry": 300,
			},
			DemandLevel: models.DemandHigh,
			Lat:         17.6868,
			Lon:         83.2185,
		},
	}
}
