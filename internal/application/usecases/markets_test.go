package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshroute/internal/config"
	"freshroute/internal/domain/apperrors"
	"freshroute/internal/domain/models"
)

func marketUC(storage *mockStorage, weather *mockWeather, weatherCfg config.WeatherConfig) *MarketUseCase {
	recCfg := config.RecommenderConfig{TruckSpeedKmh: 40, DecayPerTravelHour: 1}
	return NewMarketUseCase(storage, weather, weatherCfg, recCfg, testLogger(), fixedNow)
}

func TestRecommend_RanksSeededMarkets(t *testing.T) {
	storage := newMockStorage()
	seedShipment(t, storage, -5*time.Hour)
	require.NoError(t, storage.ReplaceMarkets(context.Background(), SeedMarkets()))

	uc := marketUC(storage, &mockWeather{temp: 28}, config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5})

	result, err := uc.Recommend(context.Background(), "trip-42", 11.91, 79.81)
	require.NoError(t, err)

	require.Len(t, result.AllOptions, 5)
	require.NotNil(t, result.TopChoice)
	assert.Equal(t, result.AllOptions[0], *result.TopChoice)
	assert.InDelta(t, 91.29, result.CurrentFreshness, 0.01)
	for i := 1; i < len(result.AllOptions); i++ {
		assert.GreaterOrEqual(t,
			result.AllOptions[i-1].ExpectedRevenue,
			result.AllOptions[i].ExpectedRevenue)
	}
}

func TestRecommend_EmptyCatalogYieldsNoTopChoice(t *testing.T) {
	storage := newMockStorage()
	seedShipment(t, storage, -5*time.Hour)

	uc := marketUC(storage, &mockWeather{temp: 28}, config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5})

	result, err := uc.Recommend(context.Background(), "trip-42", 11.91, 79.81)
	require.NoError(t, err)
	assert.Empty(t, result.AllOptions)
	assert.Nil(t, result.TopChoice)
}

func TestRecommend_UnknownShipment(t *testing.T) {
	uc := marketUC(newMockStorage(), &mockWeather{temp: 28}, config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5})

	_, err := uc.Recommend(context.Background(), "nope", 11.91, 79.81)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecommend_WeatherPolicyApplies(t *testing.T) {
	storage := newMockStorage()
	seedShipment(t, storage, -5*time.Hour)
	require.NoError(t, storage.ReplaceMarkets(context.Background(), SeedMarkets()))

	t.Run("fail policy surfaces outage", func(t *testing.T) {
		uc := marketUC(storage, &mockWeather{err: errWeatherDown},
			config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5})

		_, err := uc.Recommend(context.Background(), "trip-42", 11.91, 79.81)
		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
	})

	t.Run("default policy substitutes temperature", func(t *testing.T) {
		uc := marketUC(storage, &mockWeather{err: errWeatherDown},
			config.WeatherConfig{Policy: config.FallbackDefaultTemp, DefaultTempC: 28, TimeoutSeconds: 5})

		result, err := uc.Recommend(context.Background(), "trip-42", 11.91, 79.81)
		require.NoError(t, err)
		assert.InDelta(t, 91.29, result.CurrentFreshness, 0.01)
	})
}

func TestSeed_InstallsBuiltInMarkets(t *testing.T) {
	storage := newMockStorage()
	uc := marketUC(storage, &mockWeather{temp: 28}, config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5})

	count, err := uc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	markets, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, markets, 5)
	assert.Equal(t, "Koyambedu Market, Chennai", markets[0].Name)
	assert.Equal(t, models.DemandHigh, markets[0].DemandLevel)
	assert.Equal(t, 35.0, markets[0].Prices.Price("Tomato"))
}
