package factory

import (
	"fmt"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/config"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
	color_handler "github.com/hasirciogluhq/colorserver/cmd/color/internal/handler/color"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/listener"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
)

// ServerFactory binds the listener and wires the color handler into a core.Server
type ServerFactory struct {
	cfg *config.ServerConfig
}

// NewServerFactory creates a new server factory
func NewServerFactory(cfg *config.ServerConfig) *ServerFactory {
	return &ServerFactory{cfg: cfg}
}

// Create binds the configured port. Exchange counters are recorded in stats.
func (f *ServerFactory) Create(stats *core.Stats) (*core.Server, error) {
	l, err := listener.Listen(f.cfg.ListenAddr(), f.cfg.Backlog)
	if err != nil {
		return nil, fmt.Errorf("failed to start listener: %w", err)
	}

	if f.cfg.Workers > 0 {
		logger.Info("Using bounded worker pool", "workers", f.cfg.Workers)
	}

	return &core.Server{
		Listener:          l,
		ConnectionHandler: &color_handler.ColorHandler{Stats: stats},
		Workers:           f.cfg.Workers,
	}, nil
}
