package ports

import (
	"context"
	"time"

	"freshroute/internal/domain/models"
)

// CachePort defines the interface for ephemeral derived data
type CachePort interface {
	// SetFreshness caches a freshness reading with an explicit staleness
	// bound; a reading older than ttl must never be served
	SetFreshness(ctx context.Context, reading models.FreshnessReading, ttl time.Duration) error

	// GetFreshness returns the cached reading for a shipment, or nil on miss
	GetFreshness(ctx context.Context, shipmentID string) (*models.FreshnessReading, error)

	// SetLastLocation caches the most recent position of a shipment
	SetLastLocation(ctx context.Context, event models.LocationEvent) error

	// GetLastLocation returns the last known position, or nil when unknown
	GetLastLocation(ctx context.Context, shipmentID string) (*models.LocationEvent, error)

	// Close closes the cache connection
	Close() error
}
