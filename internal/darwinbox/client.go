// Package darwinbox implements the authenticated request layer for the
// Darwinbox HR API: a token manager that fetches the access token once and a
// client that executes operations with it.
package darwinbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
)

// maxResponseSize caps the upstream response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// tokenHeader carries the access token on every operation request.
const tokenHeader = "TOKEN"

// Options configures a Client.
type Options struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

// Client executes authenticated Darwinbox API operations.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenManager
	logger     *common.Logger
}

// NewClient creates a client and its token manager. Both share one
// http.Client.
func NewClient(opts Options, logger *common.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     NewTokenManager(baseURL, httpClient, opts.Credentials, logger),
		logger:     logger,
	}
}

// Tokens returns the client's token manager.
func (c *Client) Tokens() *TokenManager {
	return c.tokens
}

// BaseURL returns the configured Darwinbox domain.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Execute sends method baseURL+path with payload as the JSON body and the
// access token in the TOKEN header. The upstream body is returned verbatim.
// A nil payload sends no body.
//
// Token failures are returned unchanged (AuthError). Transport failures and
// statuses >= 400 become RemoteError with the upstream "message" field when
// present.
func (c *Client) Execute(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	logger := c.logger.ForContext(ctx)
	logger.Debug().Str("method", method).Str("path", path).Msg("darwinbox request")

	var bodyReader io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(tokenHeader, token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("darwinbox request failed")
		return nil, NewRemoteError(err.Error(), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, NewRemoteError(fmt.Sprintf("failed to read response: %v", err), 0)
	}

	logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("darwinbox response")

	if resp.StatusCode >= 400 {
		msg := upstreamMessage(resp.StatusCode, body)
		logger.Warn().Str("path", path).Int("status", resp.StatusCode).Str("message", msg).Msg("darwinbox error response")
		return nil, NewRemoteError(msg, resp.StatusCode)
	}

	return normalizeBody(body), nil
}

// normalizeBody makes the upstream body a valid JSON value: empty becomes
// null and non-JSON text becomes a JSON string.
func normalizeBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage("null")
	}
	if json.Valid(trimmed) {
		return json.RawMessage(body)
	}
	quoted, _ := json.Marshal(string(body))
	return json.RawMessage(quoted)
}

// upstreamMessage extracts the "message" field from an error body, falling
// back to the status and raw body.
func upstreamMessage(statusCode int, body []byte) string {
	var errResp struct {
		Message json.RawMessage `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil && len(errResp.Message) > 0 {
		var s string
		if json.Unmarshal(errResp.Message, &s) == nil {
			if strings.TrimSpace(s) != "" {
				return s
			}
		} else if string(errResp.Message) != "null" {
			return string(errResp.Message)
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return fmt.Sprintf("server returned %d: %s", statusCode, trimmed)
	}
	return fmt.Sprintf("server returned %d", statusCode)
}
