package concurrency

import (
	"context"
	"log/slog"
	"sync"

	"freshroute/internal/domain/models"
)

// Manager handles concurrency patterns for location processing
type Manager struct {
	logger      *slog.Logger
	workerPools map[string]*WorkerPool
	mu          sync.RWMutex
}

// NewManager creates a new concurrency manager
func NewManager(logger *slog.Logger) *Manager {
	return &Manager{
		logger:      logger,
		workerPools: make(map[string]*WorkerPool),
	}
}

// StartWorkerPool starts a worker pool for a feed
func (m *Manager) StartWorkerPool(ctx context.Context, feed string, workers int, inputCh <-chan models.LocationUpdate, outputCh chan<- models.LocationUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.workerPools[feed]; exists {
		return
	}

	pool := NewWorkerPool(workers, m.logger)
	m.workerPools[feed] = pool

	go pool.Start(ctx, inputCh, outputCh)
}

// StopWorkerPool stops a worker pool for a feed
func (m *Manager) StopWorkerPool(feed string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pool, exists := m.workerPools[feed]; exists {
		pool.Stop()
		delete(m.workerPools, feed)
	}
}

// FanIn aggregates multiple input channels into a single output channel
func (m *Manager) FanIn(ctx context.Context, inputs []<-chan models.LocationUpdate) <-chan models.LocationUpdate {
	output := make(chan models.LocationUpdate)

	var wg sync.WaitGroup

	for _, input := range inputs {
		wg.Add(1)
		go func(ch <-chan models.LocationUpdate) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case update, ok := <-ch:
					if !ok {
						return
					}
					select {
					case output <- update:
					case <-ctx.Done():
						return
					}
				}
			}
		}(input)
	}

	go func() {
		wg.Wait()
		close(output)
	}()

	return output
}
