package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
	"github.com/bobmcallan/darwinbox-mcp/internal/darwinbox"
	"github.com/bobmcallan/darwinbox-mcp/internal/telemetry"
	"github.com/bobmcallan/darwinbox-mcp/internal/tools"
)

// errorBody is the text of every failed tool result.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    darwinbox.Kind `json:"kind"`
	Message string         `json:"message"`
}

// errorResult creates an MCP error result carrying the error kind and message as JSON.
func errorResult(err error) *mcp.CallToolResult {
	out, _ := json.Marshal(errorBody{Error: errorDetail{
		Kind:    darwinbox.KindOf(err),
		Message: darwinbox.MessageOf(err),
	}})
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(out)),
		},
		IsError: true,
	}
}

// ToolHandler routes an MCP tool call for name through the registry. Every
// call gets a correlation ID, a span and execution metrics. Failures are
// returned as error results, never as protocol errors.
func ToolHandler(reg *tools.Registry, tel *telemetry.Telemetry, logger *common.Logger, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		correlationID := common.CorrelationID(ctx)
		if correlationID == "" {
			correlationID = uuid.New().String()
			ctx = common.WithCorrelationID(ctx, correlationID)
		}
		ctx, finish := tel.StartTool(ctx, name, correlationID)
		log := logger.ForContext(ctx)

		start := time.Now()
		out, err := dispatch(ctx, reg, name, r)
		finish(err)
		durationMs := time.Since(start).Milliseconds()

		if err != nil {
			log.Warn().
				Str("tool", name).
				Str("kind", string(darwinbox.KindOf(err))).
				Str("error", darwinbox.MessageOf(err)).
				Int64("duration_ms", durationMs).
				Msg("tool call failed")
			return errorResult(err), nil
		}

		log.Info().Str("tool", name).Int64("duration_ms", durationMs).Msg("tool call completed")
		return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(string(out))}}, nil
	}
}

func dispatch(ctx context.Context, reg *tools.Registry, name string, r mcp.CallToolRequest) (json.RawMessage, error) {
	if r.Params.Arguments == nil {
		return nil, darwinbox.NewInvalidArgument("Missing required arguments")
	}
	args := r.GetArguments()
	if args == nil {
		return nil, darwinbox.NewInvalidArgument("arguments must be an object")
	}
	return reg.Call(ctx, name, args)
}
