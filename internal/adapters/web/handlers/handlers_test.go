package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshroute/internal/application/usecases"
	"freshroute/internal/config"
	"freshroute/internal/domain/apperrors"
	"freshroute/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubStorage struct {
	shipments map[string]models.Shipment
	markets   []models.Market
}

func (s *stubStorage) CreateShipment(ctx context.Context, shipment models.Shipment) error {
	s.shipments[shipment.ID] = shipment
	return nil
}

func (s *stubStorage) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	shipment, ok := s.shipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &shipment, nil
}

func (s *stubStorage) UpdateShipmentStatus(ctx context.Context, id string, status models.ShipmentStatus) error {
	shipment, ok := s.shipments[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	shipment.Status = status
	s.shipments[id] = shipment
	return nil
}

func (s *stubStorage) ListMarkets(ctx context.Context) ([]models.Market, error) {
	return s.markets, nil
}

func (s *stubStorage) ReplaceMarkets(ctx context.Context, markets []models.Market) error {
	s.markets = markets
	return nil
}

func (s *stubStorage) Close() error { return nil }

type stubCache struct{}

func (stubCache) SetFreshness(context.Context, models.FreshnessReading, time.Duration) error {
	return nil
}
func (stubCache) GetFreshness(context.Context, string) (*models.FreshnessReading, error) {
	return nil, nil
}
func (stubCache) SetLastLocation(context.Context, models.LocationEvent) error { return nil }
func (stubCache) GetLastLocation(context.Context, string) (*models.LocationEvent, error) {
	return nil, nil
}
func (stubCache) Close() error { return nil }

type stubWeather struct {
	temp float64
	err  error
}

func (s stubWeather) CurrentTemperature(context.Context, float64, float64) (float64, error) {
	return s.temp, s.err
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newStorageWithShipment() *stubStorage {
	return &stubStorage{
		shipments: map[string]models.Shipment{
			"trip-42": {
				ID:               "trip-42",
				ProduceName:      "Tomato",
				Quantity:         100,
				DecayConstant:    0.5,
				HarvestTimestamp: fixedNow().Add(-5 * time.Hour),
				Status:           models.StatusInTransit,
			},
		},
	}
}

func freshnessHandler(storage *stubStorage, weather stubWeather) *ShipmentsHandler {
	weatherCfg := config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5}
	cacheCfg := config.CacheConfig{FreshnessTTLSeconds: 30}
	freshnessUC := usecases.NewFreshnessUseCase(storage, stubCache{}, weather, weatherCfg, cacheCfg, testLogger(), fixedNow)
	return NewShipmentsHandler(nil, freshnessUC, testLogger())
}

func TestShipmentStatus_ReturnsReading(t *testing.T) {
	handler := freshnessHandler(newStorageWithShipment(), stubWeather{temp: 28})

	req := httptest.NewRequest(http.MethodGet, "/shipments/status/trip-42?lat=11.91&lon=79.81", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var reading models.FreshnessReading
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reading))
	assert.InDelta(t, 91.29, reading.Freshness, 0.01)
	assert.Equal(t, models.RiskLow, reading.Risk)
}

func TestShipmentStatus_NotFound(t *testing.T) {
	handler := freshnessHandler(newStorageWithShipment(), stubWeather{temp: 28})

	req := httptest.NewRequest(http.MethodGet, "/shipments/status/nope", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Error.Kind)
}

func TestShipmentStatus_WeatherOutageMapsToBadGateway(t *testing.T) {
	handler := freshnessHandler(newStorageWithShipment(), stubWeather{err: assert.AnError})

	req := httptest.NewRequest(http.MethodGet, "/shipments/status/trip-42", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "upstream_unavailable", body.Error.Kind)
}

func TestRecommend_ReturnsRankedMarkets(t *testing.T) {
	storage := newStorageWithShipment()
	storage.markets = usecases.SeedMarkets()

	weatherCfg := config.WeatherConfig{Policy: config.FallbackFail, TimeoutSeconds: 5}
	recCfg := config.RecommenderConfig{TruckSpeedKmh: 40, DecayPerTravelHour: 1}
	marketUC := usecases.NewMarketUseCase(storage, stubWeather{temp: 28}, weatherCfg, recCfg, testLogger(), fixedNow)
	handler := NewMarketsHandler(marketUC, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/markets/recommend/trip-42", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result models.RecommendationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotNil(t, result.TopChoice)
	assert.Len(t, result.AllOptions, 5)
}

func TestStartShipment_MalformedBody(t *testing.T) {
	catalogLess := NewShipmentsHandler(
		usecases.NewShipmentUseCase(newStorageWithShipment(), rejectingCatalog{}, testLogger(), fixedNow),
		nil, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/shipments/start", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	catalogLess.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type rejectingCatalog struct{}

func (rejectingCatalog) LookupDecayConstant(string) (float64, error) {
	return 0, apperrors.ErrUnsupportedProduce
}
func (rejectingCatalog) List() []models.Produce { return nil }
