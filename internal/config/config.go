package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/readingtime/readingtime/pkg/trigger"
	"github.com/readingtime/readingtime/pkg/types"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultBodyFieldID = "body"
	DefaultStorePath   = "readingtime.db"
	DefaultListenAddr  = ":8080"
	DefaultDebounce    = trigger.DefaultQuietPeriod
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
)

// Config is the top-level configuration of the reading-time host.
type Config struct {
	// Installation holds the app-wide estimation parameters.
	Installation types.Config `yaml:"installation"`

	Instance InstanceConfig `yaml:"instance"`
	Host     HostConfig     `yaml:"host"`
}

// InstanceConfig holds per-field settings.
type InstanceConfig struct {
	// BodyFieldID names the source field the reading time is computed from.
	BodyFieldID string `yaml:"body_field_id"`
}

// HostConfig holds settings of the reference host process.
type HostConfig struct {
	// StorePath is the bbolt file results are persisted to. Empty keeps
	// results in memory only.
	StorePath string `yaml:"store_path"`

	// ListenAddr is the address the REST API and WebSocket hub listen on.
	ListenAddr string `yaml:"listen_addr"`

	// Debounce is the quiet period before a content change is recomputed.
	Debounce time.Duration `yaml:"debounce"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is one of: json | text.
	LogFormat string `yaml:"log_format"`

	// Auth guards state-changing HTTP requests such as overrides.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig configures REST API authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// Header is the request header carrying the key. Empty uses X-API-Key.
	Header string `yaml:"header"`

	// KeyEnv is the name of the environment variable holding the expected key.
	KeyEnv string `yaml:"key_env"`
}

// Key returns the API key resolved from the environment.
// Returns empty string if KeyEnv is unset or the variable is not found.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config pre-populated with default values.
func Default() *Config {
	return &Config{
		Installation: types.DefaultConfig(),
		Instance: InstanceConfig{
			BodyFieldID: DefaultBodyFieldID,
		},
		Host: HostConfig{
			StorePath:  DefaultStorePath,
			ListenAddr: DefaultListenAddr,
			Debounce:   DefaultDebounce,
			LogLevel:   DefaultLogLevel,
			LogFormat:  DefaultLogFormat,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if err := cfg.Installation.Validate(); err != nil {
		return fmt.Errorf("installation: %w", err)
	}
	if cfg.Instance.BodyFieldID == "" {
		return fmt.Errorf("instance.body_field_id is required")
	}
	if cfg.Host.Debounce < 0 {
		return fmt.Errorf("host.debounce must not be negative")
	}
	switch cfg.Host.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("host.log_level: unknown level %q", cfg.Host.LogLevel)
	}
	switch cfg.Host.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("host.log_format: unknown format %q", cfg.Host.LogFormat)
	}
	switch cfg.Host.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("host.auth.mode: unknown mode %q", cfg.Host.Auth.Mode)
	}
	return nil
}
