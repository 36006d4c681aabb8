package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var requiredEnv = []string{
	"DARWINBOX_DOMAIN",
	"DARWINBOX_CLIENT_ID",
	"DARWINBOX_CLIENT_SECRET",
	"DARWINBOX_GRANT_TYPE",
	"DARWINBOX_CODE",
	"DARWINBOX_DATASET_KEY",
}

// clearEnv blanks every DARWINBOX_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(requiredEnv,
		"DARWINBOX_TIMEOUT", "DARWINBOX_MCP_PORT", "DARWINBOX_MCP_HOST",
		"DARWINBOX_LOG_LEVEL", "DARWINBOX_TELEMETRY") {
		t.Setenv(key, "")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DARWINBOX_DOMAIN", "https://acme.darwinbox.in")
	t.Setenv("DARWINBOX_CLIENT_ID", "client-1")
	t.Setenv("DARWINBOX_CLIENT_SECRET", "secret-1")
	t.Setenv("DARWINBOX_GRANT_TYPE", "authorization_code")
	t.Setenv("DARWINBOX_CODE", "code-1")
	t.Setenv("DARWINBOX_DATASET_KEY", "dataset-1")
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.Server.Name != "darwinbox-mcp" {
		t.Errorf("expected default server name darwinbox-mcp, got %s", cfg.Server.Name)
	}
	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port 4250, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
	if cfg.Telemetry.Enabled {
		t.Error("expected telemetry disabled by default")
	}
	if got := cfg.Darwinbox.GetTimeout(); got != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", got)
	}
}

func TestLoadFromFiles_EnvOnly(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Darwinbox.Domain != "https://acme.darwinbox.in" {
		t.Errorf("expected domain from env, got %s", cfg.Darwinbox.Domain)
	}
	if cfg.Darwinbox.DatasetKey != "dataset-1" {
		t.Errorf("expected dataset key from env, got %s", cfg.Darwinbox.DatasetKey)
	}
	if issues := cfg.Validate(); len(issues) != 0 {
		t.Errorf("expected no validation issues, got %v", issues)
	}
}

func TestLoadFromFiles_ValidTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "darwinbox-mcp.toml")

	content := `
[server]
port = 9090

[darwinbox]
domain = "https://file.darwinbox.in"
client_id = "file-client"
client_secret = "file-secret"
grant_type = "authorization_code"
code = "file-code"
dataset_key = "file-dataset"
timeout = "5s"

[logging]
level = "debug"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("expected default host to survive partial file, got %s", cfg.Server.Host)
	}
	if cfg.Darwinbox.ClientID != "file-client" {
		t.Errorf("expected client id from file, got %s", cfg.Darwinbox.ClientID)
	}
	if got := cfg.Darwinbox.GetTimeout(); got != 5*time.Second {
		t.Errorf("expected timeout 5s, got %s", got)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "darwinbox-mcp.toml")

	content := `
[darwinbox]
domain = "https://file.darwinbox.in"
dataset_key = "file-dataset"
`
	if err := os.WriteFile(tomlPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DARWINBOX_DATASET_KEY", "env-dataset")
	t.Setenv("DARWINBOX_MCP_PORT", "5001")

	cfg, err := LoadFromFiles(tomlPath)
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Darwinbox.DatasetKey != "env-dataset" {
		t.Errorf("expected env to override file, got %s", cfg.Darwinbox.DatasetKey)
	}
	if cfg.Darwinbox.Domain != "https://file.darwinbox.in" {
		t.Errorf("expected file domain to survive, got %s", cfg.Darwinbox.Domain)
	}
	if cfg.Server.Port != 5001 {
		t.Errorf("expected port 5001 from env, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_InvalidPortEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("DARWINBOX_MCP_PORT", "not-a-number")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port to survive invalid env, got %d", cfg.Server.Port)
	}
}

func TestLoadFromFiles_InvalidTOML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(tomlPath, []byte("[darwinbox\ndomain = "), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFiles(tomlPath); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFromFiles("/nonexistent/darwinbox-mcp.toml"); err == nil {
		t.Fatal("expected error for missing explicit file")
	}
}

func TestLoadFromFile_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile should tolerate a missing file: %v", err)
	}
	if cfg.Server.Port != 4250 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestValidate_ListsEveryMissingSetting(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}

	issues := cfg.Validate()
	if len(issues) != len(requiredEnv) {
		t.Fatalf("expected %d issues, got %d: %v", len(requiredEnv), len(issues), issues)
	}
	joined := strings.Join(issues, "\n")
	for _, key := range requiredEnv {
		if !strings.Contains(joined, key) {
			t.Errorf("expected issue mentioning %s, got:\n%s", key, joined)
		}
	}
}

func TestValidate_SingleMissingSetting(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("DARWINBOX_CODE", "")

	cfg, err := LoadFromFiles()
	if err != nil {
		t.Fatalf("LoadFromFiles failed: %v", err)
	}
	issues := cfg.Validate()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	if !strings.Contains(issues[0], "DARWINBOX_CODE") {
		t.Errorf("expected issue to name DARWINBOX_CODE, got %s", issues[0])
	}
}

func TestValidate_DomainScheme(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("DARWINBOX_DOMAIN", "acme.darwinbox.in")

	cfg, _ := LoadFromFiles()
	issues := cfg.Validate()
	if len(issues) != 1 || !strings.Contains(issues[0], "http") {
		t.Errorf("expected scheme issue, got %v", issues)
	}
}

func TestValidate_TelemetryExporter(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("DARWINBOX_TELEMETRY", "jaeger")

	cfg, _ := LoadFromFiles()
	if !cfg.Telemetry.Enabled {
		t.Fatal("expected telemetry enabled by env")
	}
	issues := cfg.Validate()
	if len(issues) != 1 || !strings.Contains(issues[0], "jaeger") {
		t.Errorf("expected exporter issue, got %v", issues)
	}
}

func TestGetTimeout_Invalid(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 30 * time.Second},
		{"soon", 30 * time.Second},
		{"-5s", 30 * time.Second},
		{"90s", 90 * time.Second},
	}
	for _, tt := range tests {
		c := DarwinboxConfig{Timeout: tt.in}
		if got := c.GetTimeout(); got != tt.want {
			t.Errorf("GetTimeout(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()
	ApplyFlagOverrides(cfg, 7000, "0.0.0.0")
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port 7000, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got %s", cfg.Server.Host)
	}

	ApplyFlagOverrides(cfg, 0, "")
	if cfg.Server.Port != 7000 {
		t.Errorf("zero port flag must not override, got %d", cfg.Server.Port)
	}
}

func TestBaseURL_TrimsTrailingSlash(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Darwinbox.Domain = "https://acme.darwinbox.in/"
	if got := cfg.BaseURL(); got != "https://acme.darwinbox.in" {
		t.Errorf("expected trailing slash trimmed, got %s", got)
	}
}
