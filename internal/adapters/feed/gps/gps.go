package gps

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"freshroute/internal/application/ports"
	"freshroute/internal/config"
	"freshroute/internal/domain/models"
)

// Adapter implements the FeedPort interface for live telemetry gateways.
// Each gateway streams newline-delimited JSON location samples over TCP.
type Adapter struct {
	gateways  []config.FeedEndpointConfig
	connected bool
}

// New creates a new live GPS feed adapter
func New(cfg config.FeedsConfig) ports.FeedPort {
	gateways := []config.FeedEndpointConfig{
		cfg.Gateway1,
		cfg.Gateway2,
	}

	return &Adapter{
		gateways:  gateways,
		connected: false,
	}
}

// Start begins location collection
func (a *Adapter) Start(ctx context.Context) (<-chan models.LocationUpdate, error) {
	updateCh := make(chan models.LocationUpdate, 1000)

	for i, gateway := range a.gateways {
		if gateway.Host == "" {
			continue
		}
		gatewayName := fmt.Sprintf("gateway%d", i+1)
		go a.connectToGateway(ctx, gateway, gatewayName, updateCh)
	}

	a.connected = true
	return updateCh, nil
}

// Stop stops location collection
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
	return "live"
}

func (a *Adapter) connectToGateway(ctx context.Context, cfg config.FeedEndpointConfig, gatewayName string, updateCh chan<- models.LocationUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := a.handleGatewayConnection(ctx, cfg, gatewayName, updateCh); err != nil {
				// Wait before reconnecting
				time.Sleep(5 * time.Second)
			}
		}
	}
}

func (a *Adapter) handleGatewayConnection(ctx context.Context, cfg config.FeedEndpointConfig, gatewayName string, updateCh chan<- models.LocationUpdate) error {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", gatewayName, err)
	}
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
			var update models.LocationUpdate
			if err := json.Unmarshal(scanner.Bytes(), &update); err != nil {
				continue
			}

			update.ReceivedAt = time.Now()

			select {
			case updateCh <- update:
			case <-ctx.Done():
				return nil
			default:
				// Channel is full, skip this update
			}
		}
	}

	return scanner.Err()
}
