package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"freshroute/internal/application/ports"
	"freshroute/internal/concurrency"
	"freshroute/internal/domain/models"
	"freshroute/internal/tracking"
)

// feedPublisher is the identity the pipeline publishes under. It is never
// registered as a subscriber, so feed updates reach every group member.
const feedPublisher = "feed-pipeline"

// TrackingUseCase runs the location ingest pipeline: feed adapters are
// fanned in, validated by a worker pool, relayed through the hub and the
// last known position cached.
type TrackingUseCase struct {
	hub      *tracking.Hub
	cache    ports.CachePort
	manager  *concurrency.Manager
	liveFeed ports.FeedPort
	simFeed  ports.FeedPort
	workers  int
	logger   *slog.Logger

	mu   sync.RWMutex
	mode models.FeedMode
}

// NewTrackingUseCase creates a new TrackingUseCase
func NewTrackingUseCase(hub *tracking.Hub, cache ports.CachePort, manager *concurrency.Manager, liveFeed, simFeed ports.FeedPort, workers int, logger *slog.Logger) *TrackingUseCase {
	return &TrackingUseCase{
		hub:      hub,
		cache:    cache,
		manager:  manager,
		liveFeed: liveFeed,
		simFeed:  simFeed,
		workers:  workers,
		logger:   logger,
		mode:     models.FeedModeLive,
	}
}

// Start begins consuming both feeds and relaying their updates. Only the
// feed matching the active mode is forwarded; the other is drained and
// discarded so a mode switch takes effect without reconnecting.
func (uc *TrackingUseCase) Start(ctx context.Context) error {
	liveCh, err := uc.liveFeed.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start live feed: %w", err)
	}
	simCh, err := uc.simFeed.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start sim feed: %w", err)
	}

	liveOut := make(chan models.LocationUpdate, 1000)
	simOut := make(chan models.LocationUpdate, 1000)
	uc.manager.StartWorkerPool(ctx, uc.liveFeed.GetName(), uc.workers, liveCh, liveOut)
	uc.manager.StartWorkerPool(ctx, uc.simFeed.GetName(), uc.workers, simCh, simOut)

	tagged := uc.manager.FanIn(ctx, []<-chan models.LocationUpdate{
		tagSource(ctx, liveOut, string(models.FeedModeLive)),
		tagSource(ctx, simOut, string(models.FeedModeSim)),
	})

	uc.logger.Info("Tracking pipeline started", "workers", uc.workers, "mode", uc.GetMode())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-tagged:
			if !ok {
				return nil
			}
			if update.Source != string(uc.GetMode()) {
				continue
			}
			uc.relay(ctx, update)
		}
	}
}

// Publish pushes a single position sample into the pipeline on behalf of
// a connected client. Used by the websocket transport.
func (uc *TrackingUseCase) Publish(ctx context.Context, connID string, update models.LocationUpdate) {
	uc.hub.Publish(connID, update.ShipmentID, update.Lat, update.Lon)
	uc.cacheLocation(ctx, update)
}

// GetMode returns the active feed mode
func (uc *TrackingUseCase) GetMode() models.FeedMode {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.mode
}

// SetMode switches the active feed mode
func (uc *TrackingUseCase) SetMode(mode models.FeedMode) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.mode = mode
}

// LastLocation returns the last known position of a shipment, or nil
// when none has been seen
func (uc *TrackingUseCase) LastLocation(ctx context.Context, shipmentID string) (*models.LocationEvent, error) {
	return uc.cache.GetLastLocation(ctx, shipmentID)
}

// HubStats exposes the hub's relay counters
func (uc *TrackingUseCase) HubStats() tracking.Stats {
	return uc.hub.Stats()
}

func (uc *TrackingUseCase) relay(ctx context.Context, update models.LocationUpdate) {
	uc.hub.Publish(feedPublisher, update.ShipmentID, update.Lat, update.Lon)
	uc.cacheLocation(ctx, update)
}

func (uc *TrackingUseCase) cacheLocation(ctx context.Context, update models.LocationUpdate) {
	event := models.LocationEvent{
		ShipmentID: update.ShipmentID,
		Lat:        update.Lat,
		Lon:        update.Lon,
		Timestamp:  update.ReceivedAt,
	}
	if err := uc.cache.SetLastLocation(ctx, event); err != nil {
		uc.logger.Warn("Failed to cache last location", "error", err, "shipment_id", update.ShipmentID)
	}
}

// tagSource labels each update with the feed it came from so the pipeline
// can filter on the active mode after fan-in.
func tagSource(ctx context.Context, in <-chan models.LocationUpdate, source string) <-chan models.LocationUpdate {
	out := make(chan models.LocationUpdate)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-in:
				if !ok {
					return
				}
				update.Source = source
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
