package config

import "github.com/bobmcallan/darwinbox-mcp/internal/common"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "darwinbox-mcp",
			Port: 4250,
			Host: "localhost",
		},
		Darwinbox: DarwinboxConfig{
			Timeout: "30s",
		},
		Logging: common.LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/darwinbox-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "darwinbox-mcp",
			Exporter:    "stdout",
		},
	}
}
