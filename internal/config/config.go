package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	App     AppConfig     `toml:"app"`
	Server  ServerConfig  `toml:"server"`
	Auth    AuthConfig    `toml:"auth"`
	Logging LoggingConfig `toml:"logging"`
	Player  PlayerConfig  `toml:"player"`
	Metrics MetricsConfig `toml:"metrics"`
	Ngrok   NgrokConfig   `toml:"ngrok"`
}

// AppConfig identifies the running application
type AppConfig struct {
	Name    string `toml:"name" validate:"required"`
	Version string `toml:"version" validate:"required"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port            string `toml:"port" validate:"required,numeric"`
	Host            string `toml:"host" validate:"required"`
	EnableCORS      bool   `toml:"enable_cors"`
	ReadTimeout     int    `toml:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeout    int    `toml:"write_timeout_seconds" validate:"gte=0"`
	IdleTimeout     int    `toml:"idle_timeout_seconds" validate:"gte=0"`
	ShutdownTimeout int    `toml:"shutdown_timeout_seconds" validate:"gte=0"`
}

// AuthConfig contains account and login settings
type AuthConfig struct {
	BcryptCost int `toml:"bcrypt_cost" validate:"gte=4,lte=31"`
	// Login attempts per second allowed for a single client; 0 disables limiting.
	LoginRatePerSecond float64 `toml:"login_rate_per_second" validate:"gte=0"`
	LoginBurst         int     `toml:"login_burst" validate:"gte=1"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level          string `toml:"level" validate:"oneof=debug info warn error"`
	Format         string `toml:"format" validate:"oneof=text json"`
	File           string `toml:"file"`
	RequestLogging bool   `toml:"request_logging"`
}

// PlayerConfig holds playback settings reserved for streaming features.
// None of the current routes read them.
type PlayerConfig struct {
	DefaultVolume         int `toml:"default_volume"`
	MinVolume             int `toml:"min_volume" validate:"gte=0"`
	MaxVolume             int `toml:"max_volume" validate:"gte=0"`
	StreamBufferTimeout   int `toml:"stream_buffer_timeout_seconds" validate:"gte=0"`
	SuspiciousStreamLimit int `toml:"suspicious_stream_limit" validate:"gte=1"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path" validate:"required,startswith=/"`
}

// NgrokConfig contains ngrok tunnel configuration
type NgrokConfig struct {
	Enabled   bool   `toml:"enabled"`
	AuthToken string `toml:"auth_token"`
	Domain    string `toml:"domain"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "Musa",
			Version: "1.0.0",
		},
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			EnableCORS:      true,
			ReadTimeout:     30,
			WriteTimeout:    30,
			IdleTimeout:     120,
			ShutdownTimeout: 10,
		},
		Auth: AuthConfig{
			BcryptCost:         12,
			LoginRatePerSecond: 5,
			LoginBurst:         10,
		},
		Logging: LoggingConfig{
			Level:          "info",
			Format:         "text",
			File:           "",
			RequestLogging: true,
		},
		Player: PlayerConfig{
			DefaultVolume:         50,
			MinVolume:             0,
			MaxVolume:             100,
			StreamBufferTimeout:   5,
			SuspiciousStreamLimit: 2,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Ngrok: NgrokConfig{
			Enabled: false,
		},
	}
}

// LoadConfig loads configuration from a TOML file, then applies overrides
// from the environment (and a .env file next to the working directory).
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cfg.SaveToFile(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config file: %w", err)
		}
	} else if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyEnv(".env"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnv loads envFile if present (existing variables win) and copies the
// recognised MUSA_* variables over the file values.
func (c *Config) applyEnv(envFile string) error {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	overrides := map[string]*string{
		"MUSA_HOST":       &c.Server.Host,
		"MUSA_PORT":       &c.Server.Port,
		"MUSA_LOG_LEVEL":  &c.Logging.Level,
		"MUSA_LOG_FORMAT": &c.Logging.Format,
		"MUSA_LOG_FILE":   &c.Logging.File,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			*field = value
		}
	}

	if c.Ngrok.AuthToken == "" {
		c.Ngrok.AuthToken = os.Getenv("NGROK_AUTHTOKEN")
	}

	return nil
}

// SaveToFile saves the configuration to a TOML file
func (c *Config) SaveToFile(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	header := `# Musa Configuration
# Settings for the Musa music streaming API.
# Values can be overridden with MUSA_HOST, MUSA_PORT, MUSA_LOG_LEVEL,
# MUSA_LOG_FORMAT and MUSA_LOG_FILE, or from a .env file.

`
	if _, err := file.WriteString(header); err != nil {
		return fmt.Errorf("failed to write config header: %w", err)
	}

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}
	return nil
}

// Print writes the configuration as TOML. The ngrok token is masked.
func (c *Config) Print(w io.Writer) error {
	printable := *c
	if printable.Ngrok.AuthToken != "" {
		printable.Ngrok.AuthToken = "********"
	}

	if err := toml.NewEncoder(w).Encode(printable); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	p := c.Player
	if p.MinVolume > p.MaxVolume {
		return fmt.Errorf("player min volume %d exceeds max volume %d", p.MinVolume, p.MaxVolume)
	}
	if p.DefaultVolume < p.MinVolume || p.DefaultVolume > p.MaxVolume {
		return fmt.Errorf("player default volume %d outside [%d, %d]", p.DefaultVolume, p.MinVolume, p.MaxVolume)
	}

	if c.Ngrok.Enabled && c.Ngrok.AuthToken == "" {
		return fmt.Errorf("ngrok is enabled but no auth token is set (config or NGROK_AUTHTOKEN)")
	}

	return nil
}

// GetAddress returns the full server address
func (c *Config) GetAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}
