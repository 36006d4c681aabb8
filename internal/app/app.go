package app

import (
	"context"
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
	"github.com/bobmcallan/darwinbox-mcp/internal/config"
	"github.com/bobmcallan/darwinbox-mcp/internal/darwinbox"
	"github.com/bobmcallan/darwinbox-mcp/internal/handlers"
	"github.com/bobmcallan/darwinbox-mcp/internal/mcp"
	"github.com/bobmcallan/darwinbox-mcp/internal/telemetry"
	"github.com/bobmcallan/darwinbox-mcp/internal/tools"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Client    *darwinbox.Client
	Registry  *tools.Registry
	Telemetry *telemetry.Telemetry
	MCPServer *mcpserver.MCPServer

	// HTTP handlers
	MCPHandler     *mcp.Handler
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
}

// New initializes the application with all dependencies. No request reaches
// Darwinbox until the first tool call.
func New(ctx context.Context, cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	tel, err := telemetry.Setup(ctx, cfg.Telemetry, config.GetVersion(), os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to set up telemetry: %w", err)
	}
	a.Telemetry = tel

	a.Client = darwinbox.NewClient(darwinbox.Options{
		BaseURL: cfg.BaseURL(),
		Credentials: darwinbox.Credentials{
			ClientID:     cfg.Darwinbox.ClientID,
			ClientSecret: cfg.Darwinbox.ClientSecret,
			GrantType:    cfg.Darwinbox.GrantType,
			Code:         cfg.Darwinbox.Code,
		},
		Timeout: cfg.Darwinbox.GetTimeout(),
	}, logger)
	a.Registry = tools.NewRegistry(a.Client, cfg.Darwinbox.DatasetKey)
	a.MCPServer = mcp.NewServer(cfg.Server.Name, config.GetVersion(), a.Registry, a.Telemetry, logger)

	a.initHandlers()

	telemetryMode := "off"
	if cfg.Telemetry.Enabled {
		telemetryMode = cfg.Telemetry.Exporter
	}
	logger.Info().
		Str("domain", cfg.BaseURL()).
		Str("telemetry", telemetryMode).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes the HTTP handlers.
func (a *App) initHandlers() {
	a.MCPHandler = mcp.NewHandler(a.MCPServer, a.Logger)
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger, len(a.Registry.Operations()))

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	if a.Telemetry == nil {
		return nil
	}
	return a.Telemetry.Shutdown(ctx)
}
