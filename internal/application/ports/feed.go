package ports

import (
	"context"

	"freshroute/internal/domain/models"
)

// FeedPort defines the interface for location feed sources
type FeedPort interface {
	// Start begins location collection
	Start(ctx context.Context) (<-chan models.LocationUpdate, error)

	// Stop stops location collection
	Stop() error

	// IsConnected returns connection status
	IsConnected() bool

	// GetName returns the feed name
	GetName() string
}
