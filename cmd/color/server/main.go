package main

import (
	"fmt"
	"os"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/api"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/config"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/factory"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.LoadServerFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init()
	fmt.Printf("Color Server 1.0 starting, listening on port %d.\n\n", cfg.Port)
	logger.Info("Starting color server",
		"port", cfg.Port,
		"backlog", cfg.Backlog,
		"workers", cfg.Workers)

	stats := &core.Stats{}

	// Start health server
	var healthServer *api.HealthServer
	if cfg.HealthEnabled {
		healthServer = api.NewHealthServer(":"+cfg.HealthServerPort, stats)
		healthServer.Start()
	}

	// Bind the color port
	server, err := factory.NewServerFactory(cfg).Create(stats)
	if err != nil {
		logger.Fatal("Failed to start listener", "port", cfg.Port, "error", err)
	}
	fmt.Println("Server open and awaiting connections...")

	// Mark as ready
	if healthServer != nil {
		healthServer.SetReady(true)
	}

	// Start serving (blocking)
	if err := server.Serve(); err != nil {
		logger.Fatal("Listener failed", "error", err)
	}
}
