package usecases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"freshroute/internal/domain/apperrors"
	"freshroute/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockStorage struct {
	mu        sync.Mutex
	shipments map[string]models.Shipment
	markets   []models.Market
	listErr   error
}

func newMockStorage() *mockStorage {
	return &mockStorage{shipments: make(map[string]models.Shipment)}
}

func (m *mockStorage) CreateShipment(ctx context.Context, shipment models.Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shipments[shipment.ID] = shipment
	return nil
}

func (m *mockStorage) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	shipment, ok := m.shipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &shipment, nil
}

func (m *mockStorage) UpdateShipmentStatus(ctx context.Context, id string, status models.ShipmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shipment, ok := m.shipments[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	shipment.Status = status
	m.shipments[id] = shipment
	return nil
}

func (m *mockStorage) ListMarkets(ctx context.Context) ([]models.Market, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.markets, nil
}

func (m *mockStorage) ReplaceMarkets(ctx context.Context, markets []models.Market) error {
	m.markets = markets
	return nil
}

func (m *mockStorage) Close() error { return nil }

type mockCache struct {
	mu        sync.Mutex
	freshness map[string]models.FreshnessReading
	locations map[string]models.LocationEvent
	setCalls  int
}

func newMockCache() *mockCache {
	return &mockCache{
		freshness: make(map[string]models.FreshnessReading),
		locations: make(map[string]models.LocationEvent),
	}
}

func (m *mockCache) SetFreshness(ctx context.Context, reading models.FreshnessReading, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.freshness[reading.ShipmentID] = reading
	m.setCalls++
	return nil
}

func (m *mockCache) GetFreshness(ctx context.Context, shipmentID string) (*models.FreshnessReading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reading, ok := m.freshness[shipmentID]
	if !ok {
		return nil, nil
	}
	return &reading, nil
}

func (m *mockCache) SetLastLocation(ctx context.Context, event models.LocationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[event.ShipmentID] = event
	return nil
}

func (m *mockCache) GetLastLocation(ctx context.Context, shipmentID string) (*models.LocationEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.locations[shipmentID]
	if !ok {
		return nil, nil
	}
	return &event, nil
}

func (m *mockCache) Close() error { return nil }

type mockWeather struct {
	temp  float64
	err   error
	calls int
}

func (m *mockWeather) CurrentTemperature(ctx context.Context, lat, lon float64) (float64, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	return m.temp, nil
}

type mockCatalog struct {
	constants map[string]float64
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{constants: map[string]float64{"Tomato": 0.5, "Strawberry": 2.0}}
}

func (m *mockCatalog) LookupDecayConstant(produceName string) (float64, error) {
	c, ok := m.constants[produceName]
	if !ok {
		return 0, apperrors.ErrUnsupportedProduce
	}
	return c, nil
}

func (m *mockCatalog) List() []models.Produce {
	out := make([]models.Produce, 0, len(m.constants))
	for name, c := range m.constants {
		out = append(out, models.Produce{Name: name, DecayConstant: c})
	}
	return out
}

var errWeatherDown = errors.New("connection refused")
