package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
	"github.com/bobmcallan/darwinbox-mcp/internal/telemetry"
	"github.com/bobmcallan/darwinbox-mcp/internal/tools"
)

// BuildMCPTool converts an operation into an mcp.Tool with the matching input schema.
func BuildMCPTool(op tools.Operation) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(op.Description)}
	for _, p := range op.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(op.Name, opts...)
}

// buildParamOption maps a Param to the appropriate mcp-go tool option.
func buildParamOption(p tools.Param) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case tools.TypeNumber:
		return mcp.WithNumber(p.Name, opts...)
	case tools.TypeObject:
		return mcp.WithObject(p.Name, opts...)
	case tools.TypeArray:
		if p.Items == tools.TypeObject {
			opts = append([]mcp.PropertyOption{mcp.Items(map[string]any{"type": "object"})}, opts...)
		} else {
			opts = append([]mcp.PropertyOption{mcp.WithStringItems()}, opts...)
		}
		return mcp.WithArray(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}

// RegisterTools registers one MCP tool per registry operation.
func RegisterTools(s *server.MCPServer, reg *tools.Registry, tel *telemetry.Telemetry, logger *common.Logger) int {
	ops := reg.Operations()
	for _, op := range ops {
		s.AddTool(BuildMCPTool(op), ToolHandler(reg, tel, logger, op.Name))
	}
	return len(ops)
}
