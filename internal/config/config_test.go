package config

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() is invalid: %v", err)
	}

	if cfg.App.Name != "Musa" || cfg.App.Version != "1.0.0" {
		t.Errorf("Unexpected app identity %s %s", cfg.App.Name, cfg.App.Version)
	}
	if cfg.Player.DefaultVolume != 50 || cfg.Player.MaxVolume != 100 || cfg.Player.MinVolume != 0 {
		t.Errorf("Unexpected volume defaults %+v", cfg.Player)
	}
	if cfg.Player.StreamBufferTimeout != 5 || cfg.Player.SuspiciousStreamLimit != 2 {
		t.Errorf("Unexpected stream defaults %+v", cfg.Player)
	}
}

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Server.Port != DefaultConfig().Server.Port {
		t.Errorf("Expected default port, got %s", cfg.Server.Port)
	}

	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("Expected config file to be created: %v", err)
	}

	reloaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() on created file failed: %v", err)
	}
	if reloaded.App.Name != "Musa" {
		t.Errorf("Expected app name to round trip, got %s", reloaded.App.Name)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = "9090"
host = "127.0.0.1"

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.GetAddress() != "127.0.0.1:9090" {
		t.Errorf("GetAddress() = %s", cfg.GetAddress())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Unexpected logging config %+v", cfg.Logging)
	}
	// Unset sections keep their defaults.
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Expected default bcrypt cost, got %d", cfg.Auth.BcryptCost)
	}
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed toml", content: "[server\nport = 1"},
		{name: "bad log level", content: "[logging]\nlevel = \"loud\""},
		{name: "non numeric port", content: "[server]\nport = \"http\""},
		{name: "volume out of range", content: "[player]\ndefault_volume = 150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(configPath); err == nil {
				t.Error("LoadConfig() expected error")
			}
		})
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MUSA_PORT", "7070")
	t.Setenv("MUSA_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Expected port override 7070, got %s", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected level override warn, got %s", cfg.Logging.Level)
	}
}

func TestValidateNgrokRequiresToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ngrok.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error when ngrok is enabled without a token")
	}

	cfg.Ngrok.AuthToken = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestPrintMasksToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ngrok.AuthToken = "super-secret"

	var buf bytes.Buffer
	if err := cfg.Print(&buf); err != nil {
		t.Fatalf("Print() unexpected error: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "super-secret") {
		t.Error("Print() leaked the ngrok token")
	}
	for _, want := range []string{"[app]", `name = "Musa"`, "default_volume = 50"} {
		if !strings.Contains(out, want) {
			t.Errorf("Print() output missing %q", want)
		}
	}
	if cfg.Ngrok.AuthToken != "super-secret" {
		t.Error("Print() must not modify the config")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := DefaultConfig().SaveToFile(configPath); err != nil {
		t.Fatal(err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 1)
	if err := Watch(ctx, configPath, logger, func(cfg *Config) {
		select {
		case changes <- cfg:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch() unexpected error: %v", err)
	}

	updated := DefaultConfig()
	updated.Logging.Level = "debug"
	if err := updated.SaveToFile(configPath); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.Logging.Level != "debug" {
			t.Errorf("Expected reloaded level debug, got %s", cfg.Logging.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for config reload")
	}
}
