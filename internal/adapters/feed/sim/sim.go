package sim

import (
	"context"
	"math/rand"
	"time"

	"freshroute/internal/application/ports"
	"freshroute/internal/domain/models"
)

// Adapter implements the FeedPort interface with simulated GPS traces.
// Each simulated truck drifts from a South Indian city toward Chennai,
// which is enough to exercise the tracking pipeline without hardware.
type Adapter struct {
	connected bool
}

// route describes one simulated truck
type route struct {
	shipmentID string
	lat, lon   float64
}

// New creates a new simulated feed adapter
func New() ports.FeedPort {
	return &Adapter{
		connected: false,
	}
}

// Start begins location generation
func (a *Adapter) Start(ctx context.Context) (<-chan models.LocationUpdate, error) {
	updateCh := make(chan models.LocationUpdate, 1000)

	routes := []route{
		{shipmentID: "sim-trip-1", lat: 11.9139, lon: 79.8145}, // Puducherry
		{shipmentID: "sim-trip-2", lat: 9.9252, lon: 78.1198},  // Madurai
		{shipmentID: "sim-trip-3", lat: 12.2958, lon: 76.6394}, // Mysore
	}

	for i := range routes {
		go a.drive(ctx, routes[i], updateCh)
	}

	a.connected = true
	return updateCh, nil
}

// Stop stops location generation
func (a *Adapter) Stop() error {
	a.connected = false
	return nil
}

// IsConnected returns connection status
func (a *Adapter) IsConnected() bool {
	return a.connected
}

// GetName returns the feed name
func (a *Adapter) GetName() string {
	return "sim"
}

func (a *Adapter) drive(ctx context.Context, r route, updateCh chan<- models.LocationUpdate) {
	// Chennai
	const destLat, destLon = 13.0827, 80.2707

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	lat, lon := r.lat, r.lon
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Step toward the destination with some GPS jitter
			lat += (destLat-lat)*0.01 + (rand.Float64()-0.5)*0.002
			lon += (destLon-lon)*0.01 + (rand.Float64()-0.5)*0.002

			update := models.LocationUpdate{
				ShipmentID: r.shipmentID,
				Lat:        lat,
				Lon:        lon,
				ReceivedAt: time.Now(),
			}

			select {
			case updateCh <- update:
			case <-ctx.Done():
				return
			default:
				// Channel is full, skip this update
			}
		}
	}
}
