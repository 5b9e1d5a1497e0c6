package ports

import (
	"context"

	"freshroute/internal/domain/models"
)

// StoragePort defines the interface for durable shipment and market data
type StoragePort interface {
	// CreateShipment stores a new shipment record
	CreateShipment(ctx context.Context, shipment models.Shipment) error

	// GetShipment retrieves one shipment; apperrors.ErrNotFound when absent
	GetShipment(ctx context.Context, id string) (*models.Shipment, error)

	// UpdateShipmentStatus transitions a shipment's lifecycle status
	UpdateShipmentStatus(ctx context.Context, id string, status models.ShipmentStatus) error

	// ListMarkets returns the market catalog in stable insertion order
	ListMarkets(ctx context.Context) ([]models.Market, error)

	// ReplaceMarkets clears the market catalog and installs a new one
	ReplaceMarkets(ctx context.Context, markets []models.Market) error

	// Close closes the storage connection
	Close() error
}
