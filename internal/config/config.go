package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/darwinbox-mcp/internal/common"
)

// defaultTimeout applies when darwinbox.timeout is empty or unparseable.
const defaultTimeout = 30 * time.Second

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig         `toml:"server"`
	Darwinbox DarwinboxConfig      `toml:"darwinbox"`
	Logging   common.LoggingConfig `toml:"logging"`
	Telemetry TelemetryConfig      `toml:"telemetry"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// DarwinboxConfig holds the remote HR API settings. All fields except
// Timeout are mandatory.
type DarwinboxConfig struct {
	Domain       string `toml:"domain"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	GrantType    string `toml:"grant_type"`
	Code         string `toml:"code"`
	DatasetKey   string `toml:"dataset_key"`
	Timeout      string `toml:"timeout"`
}

// GetTimeout parses and returns the transport timeout.
func (c *DarwinboxConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Exporter    string `toml:"exporter"` // stdout, none
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
// A missing file is not an error; the server is normally configured
// through DARWINBOX_* variables alone.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies DARWINBOX_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	envString := map[string]*string{
		"DARWINBOX_DOMAIN":        &config.Darwinbox.Domain,
		"DARWINBOX_CLIENT_ID":     &config.Darwinbox.ClientID,
		"DARWINBOX_CLIENT_SECRET": &config.Darwinbox.ClientSecret,
		"DARWINBOX_GRANT_TYPE":    &config.Darwinbox.GrantType,
		"DARWINBOX_CODE":          &config.Darwinbox.Code,
		"DARWINBOX_DATASET_KEY":   &config.Darwinbox.DatasetKey,
		"DARWINBOX_TIMEOUT":       &config.Darwinbox.Timeout,
		"DARWINBOX_MCP_HOST":      &config.Server.Host,
		"DARWINBOX_LOG_LEVEL":     &config.Logging.Level,
	}
	for key, dst := range envString {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if port := os.Getenv("DARWINBOX_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if tel := os.Getenv("DARWINBOX_TELEMETRY"); tel != "" {
		switch strings.ToLower(tel) {
		case "none", "off", "false":
			config.Telemetry.Enabled = false
		default:
			config.Telemetry.Enabled = true
			config.Telemetry.Exporter = strings.ToLower(tel)
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate returns one issue per missing or invalid mandatory setting.
// An empty result means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string

	required := []struct {
		value string
		name  string
		env   string
	}{
		{c.Darwinbox.Domain, "darwinbox.domain", "DARWINBOX_DOMAIN"},
		{c.Darwinbox.ClientID, "darwinbox.client_id", "DARWINBOX_CLIENT_ID"},
		{c.Darwinbox.ClientSecret, "darwinbox.client_secret", "DARWINBOX_CLIENT_SECRET"},
		{c.Darwinbox.GrantType, "darwinbox.grant_type", "DARWINBOX_GRANT_TYPE"},
		{c.Darwinbox.Code, "darwinbox.code", "DARWINBOX_CODE"},
		{c.Darwinbox.DatasetKey, "darwinbox.dataset_key", "DARWINBOX_DATASET_KEY"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			issues = append(issues, fmt.Sprintf("%s is required (set %s)", r.name, r.env))
		}
	}

	if d := c.Darwinbox.Domain; d != "" && !strings.HasPrefix(d, "http://") && !strings.HasPrefix(d, "https://") {
		issues = append(issues, fmt.Sprintf("darwinbox.domain %q must start with http:// or https://", d))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if c.Telemetry.Enabled {
		switch c.Telemetry.Exporter {
		case "stdout", "none":
		default:
			issues = append(issues, fmt.Sprintf("telemetry.exporter %q is not supported (stdout, none)", c.Telemetry.Exporter))
		}
	}

	return issues
}

// BaseURL returns the Darwinbox domain without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Darwinbox.Domain, "/")
}
