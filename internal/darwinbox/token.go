package darwinbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
)

// tokenPath is the authorization endpoint, relative to the domain.
const tokenPath = "/oauth/v1token"

// maxTokenResponseSize caps the authorization response body.
const maxTokenResponseSize = 1 << 20

// Credentials are the settings posted to the authorization endpoint.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
}

// TokenManager obtains the Darwinbox access token on first use and reuses it
// for the lifetime of the process. Concurrent first callers share one fetch.
// The token is never refreshed; an upstream expiry surfaces as a RemoteError.
type TokenManager struct {
	baseURL    string
	httpClient *http.Client
	creds      Credentials
	logger     *common.Logger

	mu      sync.RWMutex
	token   string
	group   singleflight.Group
	fetches atomic.Int64
}

// NewTokenManager creates a token manager posting to baseURL + /oauth/v1token.
func NewTokenManager(baseURL string, httpClient *http.Client, creds Credentials, logger *common.Logger) *TokenManager {
	return &TokenManager{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
		logger:     logger,
	}
}

// Token returns the held access token, fetching it if none is held yet.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if tok := m.cached(); tok != "" {
		return tok, nil
	}

	// The shared fetch outlives any one caller's cancellation; each caller
	// stops waiting on its own context.
	ch := m.group.DoChan("token", func() (any, error) {
		// A caller that lost the race to the previous flight finds the slot filled.
		if tok := m.cached(); tok != "" {
			return tok, nil
		}
		tok, err := m.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return "", err
		}
		m.mu.Lock()
		m.token = tok
		m.mu.Unlock()
		return tok, nil
	})

	select {
	case <-ctx.Done():
		return "", NewAuthError(fmt.Sprintf("Failed to obtain access token: %v", ctx.Err()))
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Fetches reports how many authorization requests have been issued.
func (m *TokenManager) Fetches() int64 {
	return m.fetches.Load()
}

func (m *TokenManager) cached() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// fetch performs one authorization request.
func (m *TokenManager) fetch(ctx context.Context) (string, error) {
	logger := m.logger.ForContext(ctx)
	m.fetches.Add(1)

	payload, err := json.Marshal(m.creds)
	if err != nil {
		return "", NewAuthError(fmt.Sprintf("Failed to obtain access token: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return "", NewAuthError(fmt.Sprintf("Failed to obtain access token: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Debug().Str("path", tokenPath).Str("client_id", m.creds.ClientID).Msg("token request")

	start := time.Now()
	resp, err := m.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Error().Str("path", tokenPath).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("token request failed")
		return "", NewAuthError(fmt.Sprintf("Failed to obtain access token: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseSize))
	if err != nil {
		return "", NewAuthError(fmt.Sprintf("Failed to obtain access token: failed to read response: %v", err))
	}

	logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("token response")

	if resp.StatusCode >= 400 {
		return "", NewAuthError("Failed to obtain access token: " + upstreamMessage(resp.StatusCode, body))
	}

	parsed, err := parseTokenResponse(body)
	if err != nil {
		logger.Warn().Int("status", resp.StatusCode).Str("error", err.Error()).Msg("token response rejected")
		return "", err
	}
	return parsed.value(), nil
}

// tokenShape tags the variant of an authorization response.
type tokenShape int

const (
	// tokenShapeString is a bare token: a JSON string or a plain-text body.
	tokenShapeString tokenShape = iota + 1
	// tokenShapeObject is a JSON object carrying access_token.
	tokenShapeObject
)

// tokenResponse is the parsed authorization response.
type tokenResponse struct {
	shape       tokenShape
	raw         string
	accessToken string
}

func (r tokenResponse) value() string {
	if r.shape == tokenShapeObject {
		return r.accessToken
	}
	return r.raw
}

// parseTokenResponse accepts either a bare token or {"access_token": ...}.
// Anything else, including an empty token, is an AuthError.
func parseTokenResponse(body []byte) (tokenResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return tokenResponse{}, NewAuthError("Empty response from token server")
	}

	var resp tokenResponse
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return tokenResponse{}, NewAuthError(fmt.Sprintf("Invalid token response: %v", err))
		}
		resp = tokenResponse{shape: tokenShapeString, raw: s}
	case '{':
		var obj struct {
			AccessToken json.RawMessage `json:"access_token"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return tokenResponse{}, NewAuthError(fmt.Sprintf("Invalid token response: %v", err))
		}
		var tok string
		if len(obj.AccessToken) > 0 {
			// Non-string access_token values are treated as absent.
			_ = json.Unmarshal(obj.AccessToken, &tok)
		}
		resp = tokenResponse{shape: tokenShapeObject, accessToken: tok}
	case '[':
		return tokenResponse{}, NewAuthError("No token found in response")
	default:
		if json.Valid(trimmed) {
			// Numbers and booleans are not tokens.
			return tokenResponse{}, NewAuthError("No token found in response")
		}
		resp = tokenResponse{shape: tokenShapeString, raw: string(trimmed)}
	}

	if strings.TrimSpace(resp.value()) == "" {
		return tokenResponse{}, NewAuthError("No token found in response")
	}
	return resp, nil
}
