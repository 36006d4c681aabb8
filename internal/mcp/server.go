// Package mcp exposes the Darwinbox operation registry as an MCP server.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
	"github.com/bobmcallan/darwinbox-mcp/internal/telemetry"
	"github.com/bobmcallan/darwinbox-mcp/internal/tools"
)

// NewServer creates an MCP server with one tool per registry operation.
func NewServer(name, version string, reg *tools.Registry, tel *telemetry.Telemetry, logger *common.Logger) *server.MCPServer {
	if tel == nil {
		tel = telemetry.Noop()
	}

	mcpSrv := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	count := RegisterTools(mcpSrv, reg, tel, logger)
	logger.Info().Int("tools", count).Str("name", name).Str("version", version).Msg("MCP server initialized")

	return mcpSrv
}
