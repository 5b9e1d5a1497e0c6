package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freshroute/internal/adapters/cache/redis"
	"freshroute/internal/adapters/catalog"
	"freshroute/internal/adapters/feed/gps"
	"freshroute/internal/adapters/feed/sim"
	"freshroute/internal/adapters/storage/postgresql"
	"freshroute/internal/adapters/weather"
	"freshroute/internal/adapters/web"
	"freshroute/internal/application/usecases"
	"freshroute/internal/concurrency"
	"freshroute/internal/config"
	"freshroute/internal/logger"
	"freshroute/internal/tracking"
)

func main() {
	var (
		port = flag.Int("port", 8080, "Port number")
		help = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	// Initialize logger
	log := logger.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	storage, err := postgresql.New(cfg.Database)
	if err != nil {
		log.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	// Initialize cache
	cache, err := redis.New(cfg.Cache)
	if err != nil {
		log.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	// Initialize collaborators
	weatherProvider := weather.New(cfg.Weather)
	produceCatalog := catalog.New()

	// Initialize location feeds and the broadcast hub
	liveFeed := gps.New(cfg.Feeds)
	simFeed := sim.New()
	hub := tracking.NewHub(log, time.Now)
	concurrencyManager := concurrency.NewManager(log)

	// Initialize use cases
	shipmentUseCase := usecases.NewShipmentUseCase(storage, produceCatalog, log, time.Now)
	freshnessUseCase := usecases.NewFreshnessUseCase(storage, cache, weatherProvider, cfg.Weather, cfg.Cache, log, time.Now)
	marketUseCase := usecases.NewMarketUseCase(storage, weatherProvider, cfg.Weather, cfg.Recommender, log, time.Now)
	trackingUseCase := usecases.NewTrackingUseCase(hub, cache, concurrencyManager, liveFeed, simFeed, cfg.Feeds.Workers, log)

	// Initialize web server
	webServer := web.NewServer(*port, shipmentUseCase, freshnessUseCase, marketUseCase, trackingUseCase, produceCatalog, hub, log)

	// Start the tracking pipeline
	go func() {
		if err := trackingUseCase.Start(ctx); err != nil && err != context.Canceled {
			log.Error("Tracking pipeline stopped", "error", err)
			cancel()
		}
	}()

	// Start web server
	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("Failed to start web server", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	// Graceful shutdown
	log.Info("Shutting down gracefully...")
	webServer.Shutdown(ctx)
	log.Info("Shutdown complete")
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  freshroute [--port <N>]")
	fmt.Println("  freshroute --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --port N     Port number")
}
