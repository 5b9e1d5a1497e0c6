package concurrency

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"freshroute/internal/domain/models"
)

// WorkerPool manages a pool of workers for processing location updates
type WorkerPool struct {
	workers int
	logger  *slog.Logger
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int, logger *slog.Logger) *WorkerPool {
	return &WorkerPool{
		workers: workers,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Start starts the worker pool
func (wp *WorkerPool) Start(ctx context.Context, inputCh <-chan models.LocationUpdate, outputCh chan<- models.LocationUpdate) {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i, inputCh, outputCh)
	}

	wp.wg.Wait()
}

// Stop stops the worker pool
func (wp *WorkerPool) Stop() {
	close(wp.done)
	wp.wg.Wait()
}

func (wp *WorkerPool) worker(ctx context.Context, id int, inputCh <-chan models.LocationUpdate, outputCh chan<- models.LocationUpdate) {
	defer wp.wg.Done()

	wp.logger.Debug("Worker started", "worker_id", id)
	defer wp.logger.Debug("Worker stopped", "worker_id", id)

	for {
		select {
		case <-ctx.Done():
			return
		case <-wp.done:
			return
		case update, ok := <-inputCh:
			if !ok {
				return
			}

			processed, ok := wp.processUpdate(update)
			if !ok {
				continue
			}

			select {
			case outputCh <- processed:
			case <-ctx.Done():
				return
			case <-wp.done:
				return
			}
		}
	}
}

// processUpdate validates a raw position sample and stamps its receive
// time. Samples without a shipment id or with out-of-range coordinates
// are discarded.
func (wp *WorkerPool) processUpdate(update models.LocationUpdate) (models.LocationUpdate, bool) {
	if update.ShipmentID == "" {
		return update, false
	}
	if update.Lat < -90 || update.Lat > 90 || update.Lon < -180 || update.Lon > 180 {
		wp.logger.Warn("Discarding out-of-range coordinates",
			"shipment_id", update.ShipmentID, "lat", update.Lat, "lon", update.Lon)
		return update, false
	}
	if update.ReceivedAt.IsZero() {
		update.ReceivedAt = time.Now()
	}
	return update, true
}
