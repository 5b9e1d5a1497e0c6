package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"freshroute/internal/adapters/web/handlers"
	"freshroute/internal/adapters/ws"
	"freshroute/internal/application/ports"
	"freshroute/internal/application/usecases"
	"freshroute/internal/tracking"
)

// Server represents the HTTP server
type Server struct {
	port             int
	shipmentUseCase  *usecases.ShipmentUseCase
	freshnessUseCase *usecases.FreshnessUseCase
	marketUseCase    *usecases.MarketUseCase
	trackingUseCase  *usecases.TrackingUseCase
	catalog          ports.ProduceCatalogPort
	hub              *tracking.Hub
	logger           *slog.Logger
	server           *http.Server
}

// NewServer creates a new HTTP server
func NewServer(port int, shipmentUseCase *usecases.ShipmentUseCase, freshnessUseCase *usecases.FreshnessUseCase, marketUseCase *usecases.MarketUseCase, trackingUseCase *usecases.TrackingUseCase, catalog ports.ProduceCatalogPort, hub *tracking.Hub, logger *slog.Logger) *Server {
	return &Server{
		port:             port,
		shipmentUseCase:  shipmentUseCase,
		freshnessUseCase: freshnessUseCase,
		marketUseCase:    marketUseCase,
		trackingUseCase:  trackingUseCase,
		catalog:          catalog,
		hub:              hub,
		logger:           logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Initialize handlers
	shipmentsHandler := handlers.NewShipmentsHandler(s.shipmentUseCase, s.freshnessUseCase, s.logger)
	marketsHandler := handlers.NewMarketsHandler(s.marketUseCase, s.logger)
	produceHandler := handlers.NewProduceHandler(s.catalog, s.logger)
	modeHandler := handlers.NewModeHandler(s.trackingUseCase, s.logger)
	trackingHandler := handlers.NewTrackingHandler(s.trackingUseCase, s.logger)
	healthHandler := handlers.NewHealthHandler(s.logger)
	statusHandler := handlers.NewStatusHandler(s.trackingUseCase, s.logger)
	wsHandler := ws.NewHandler(s.hub, s.trackingUseCase, s.logger)

	// Register routes
	mux.HandleFunc("/shipments/", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Shipments request", "method", r.Method, "path", r.URL.Path)
		shipmentsHandler.Handle(w, r)
	})

	mux.HandleFunc("/markets", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Markets request", "method", r.Method, "path", r.URL.Path)
		marketsHandler.Handle(w, r)
	})

	mux.HandleFunc("/markets/", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Markets request", "method", r.Method, "path", r.URL.Path)
		marketsHandler.Handle(w, r)
	})

	mux.HandleFunc("/produce", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Produce request", "method", r.Method, "path", r.URL.Path)
		produceHandler.Handle(w, r)
	})

	mux.HandleFunc("/mode/", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Mode request", "method", r.Method, "path", r.URL.Path)
		modeHandler.Handle(w, r)
	})

	mux.HandleFunc("/tracking/last/", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Tracking request", "method", r.Method, "path", r.URL.Path)
		trackingHandler.Handle(w, r)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Health request", "method", r.Method, "path", r.URL.Path)
		healthHandler.Handle(w, r)
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Status request", "method", r.Method, "path", r.URL.Path)
		statusHandler.Handle(w, r)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Websocket request", "remote", r.RemoteAddr)
		wsHandler.Handle(w, r)
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	s.logger.Info("Starting HTTP server", "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
