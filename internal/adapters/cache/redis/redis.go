package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
	"freshroute/internal/domain/models"
)

// locationTTL bounds how long a last-known position stays useful.
const locationTTL = 10 * time.Minute

// Adapter implements the CachePort interface for Redis
type Adapter struct {
	client *redis.Client
}

// New creates a new Redis adapter
func New(cfg config.CacheConfig) (ports.CachePort, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Adapter{
		client: client,
	}, nil
}

// SetFreshness caches a freshness reading with an explicit staleness bound
func (a *Adapter) SetFreshness(ctx context.Context, reading models.FreshnessReading, ttl time.Duration) error {
	key := freshnessKey(reading.ShipmentID)

	data, err := json.Marshal(reading)
	if err != nil {
		return err
	}

	return a.client.Set(ctx, key, data, ttl).Err()
}

// GetFreshness returns the cached reading for a shipment, or nil on miss
func (a *Adapter) GetFreshness(ctx context.Context, shipmentID string) (*models.FreshnessReading, error) {
	data, err := a.client.Get(ctx, freshnessKey(shipmentID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var reading models.FreshnessReading
	if err := json.Unmarshal([]byte(data), &reading); err != nil {
		return nil, err
	}

	return &reading, nil
}

// SetLastLocation caches the most recent position of a shipment
func (a *Adapter) SetLastLocation(ctx context.Context, event models.LocationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return a.client.Set(ctx, locationKey(event.ShipmentID), data, locationTTL).Err()
}

// GetLastLocation returns the last known position, or nil when unknown
func (a *Adapter) GetLastLocation(ctx context.Context, shipmentID string) (*models.LocationEvent, error) {
	data, err := a.client.Get(ctx, locationKey(shipmentID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var event models.LocationEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}

	return &event, nil
}

// Close closes the cache connection
func (a *Adapter) Close() error {
	return a.client.Close()
}

func freshnessKey(shipmentID string) string {
	return fmt.Sprintf("freshness:%s", shipmentID)
}

func locationKey(shipmentID string) string {
	return fmt.Sprintf("location:%s", shipmentID)
}
