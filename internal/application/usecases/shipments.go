package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"freshroute/internal/application/ports"
	"freshroute/internal/domain/apperrors"
	"freshroute/internal/domain/models"
)

// ShipmentUseCase handles shipment lifecycle operations
type ShipmentUseCase struct {
	storage ports.StoragePort
	catalog ports.ProduceCatalogPort
	logger  *slog.Logger
	now     func() time.Time
}

// NewShipmentUseCase creates a new ShipmentUseCase
func NewShipmentUseCase(storage ports.StoragePort, catalog ports.ProduceCatalogPort, logger *slog.Logger, now func() time.Time) *ShipmentUseCase {
	if now == nil {
		now = time.Now
	}
	return &ShipmentUseCase{
		storage: storage,
		catalog: catalog,
		logger:  logger,
		now:     now,
	}
}

// Start creates a new in-transit shipment. The harvest timestamp is the
// creation time; the decay constant comes from the produce catalog.
func (uc *ShipmentUseCase) Start(ctx context.Context, produceName string, quantity float64, startLocation string) (*models.Shipment, error) {
	if produceName == "" {
		return nil, apperrors.Invalidf("produce name is required")
	}
	if quantity <= 0 {
		return nil, apperrors.Invalidf("quantity must be positive, got %v", quantity)
	}

	decayConstant, err := uc.catalog.LookupDecayConstant(produceName)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	shipment := models.Shipment{
		ID:               uuid.NewString(),
		ProduceName:      produceName,
		Quantity:         quantity,
		DecayConstant:    decayConstant,
		StartLocation:    startLocation,
		HarvestTimestamp: now,
		Status:           models.StatusInTransit,
		CreatedAt:        now,
	}

	if err := uc.storage.CreateShipment(ctx, shipment); err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	uc.logger.Info("Shipment started", "shipment_id", shipment.ID, "produce", produceName, "quantity", quantity)
	return &shipment, nil
}

// MarkDelivered transitions a shipment to the delivered status
func (uc *ShipmentUseCase) MarkDelivered(ctx context.Context, id string) error {
	if _, err := uc.storage.GetShipment(ctx, id); err != nil {
		return err
	}

	if err := uc.storage.UpdateShipmentStatus(ctx, id, models.StatusDelivered); err != nil {
		return fmt.Errorf("failed to update shipment status: %w", err)
	}

	uc.logger.Info("Shipment delivered", "shipment_id", id)
	return nil
}
