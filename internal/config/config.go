package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"backoffice/internal/domain"
	"backoffice/internal/eventbus"
)

// Environment variables that override file values
const (
	EnvAPIURL = "BACKOFFICE_API_URL"
	EnvToken  = "BACKOFFICE_TOKEN"
)

// Selection policies accepted in [lists.<entity>]
const (
	SelectionPersist = "persist"
	SelectionReset   = "reset"
)

// Navigate policies accepted in [detail]
const (
	NavigateOnSuccess = "on_success"
	NavigateAlways    = "always"
)

// Config represents the application configuration
type Config struct {
	Version         int                     `toml:"version"`
	APIURL          string                  `toml:"api_url"`
	Token           string                  `toml:"token"`
	Timeout         string                  `toml:"timeout"`
	RetryMax        int                     `toml:"retry_max"`
	PageSize        int                     `toml:"page_size"`
	BulkConcurrency int                     `toml:"bulk_concurrency"`
	LogFile         string                  `toml:"log_file"`
	LogLevel        int                     `toml:"log_level"`
	Lists           map[string]ListSettings `toml:"lists"`
	Detail          DetailSettings          `toml:"detail"`
	UISettings      UISettings              `toml:"ui"`
}

// ListSettings holds per-entity list behaviour
type ListSettings struct {
	SelectionPolicy string `toml:"selection_policy"`
}

// DetailSettings holds detail form behaviour
type DetailSettings struct {
	NavigatePolicy string `toml:"navigate_policy"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowFillerRows bool `toml:"show_filler_rows"`
	ConfirmBulk    bool `toml:"confirm_bulk"`
}

// RequestTimeout parses Timeout, falling back to the default on empty input
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// SelectionPolicyFor returns the configured selection policy of an entity list
func (c *Config) SelectionPolicyFor(entity string) string {
	if s, ok := c.Lists[entity]; ok && s.SelectionPolicy != "" {
		return s.SelectionPolicy
	}
	return SelectionPersist
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return &domain.ValidationError{Field: "page_size", Message: "must be at least 1"}
	}
	if c.BulkConcurrency < 1 {
		return &domain.ValidationError{Field: "bulk_concurrency", Message: "must be at least 1"}
	}
	if c.RetryMax < 0 {
		return &domain.ValidationError{Field: "retry_max", Message: "must not be negative"}
	}
	if c.Timeout != "" {
		if _, err := time.ParseDuration(c.Timeout); err != nil {
			return &domain.ValidationError{Field: "timeout", Message: err.Error()}
		}
	}
	for entity, s := range c.Lists {
		switch s.SelectionPolicy {
		case "", SelectionPersist, SelectionReset:
		default:
			return &domain.ValidationError{
				Field:   "lists." + entity + ".selection_policy",
				Message: fmt.Sprintf("unknown policy %q", s.SelectionPolicy),
			}
		}
	}
	switch c.Detail.NavigatePolicy {
	case "", NavigateOnSuccess, NavigateAlways:
	default:
		return &domain.ValidationError{
			Field:   "detail.navigate_policy",
			Message: fmt.Sprintf("unknown policy %q", c.Detail.NavigatePolicy),
		}
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
	envFile  string
}

// DefaultPath returns $XDG_CONFIG_HOME/backoffice/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "backoffice", "config.toml")
}

// NewConfigService creates a new config service; an empty path uses DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath: path,
		envFile:  ".env",
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist. Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if err := cs.applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cs.filePath, err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Lists == nil {
		cfg.Lists = make(map[string]ListSettings)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv applies BACKOFFICE_* overrides. The real environment wins over
// values read from .env.
func (cs *configService) applyEnv(cfg *Config) error {
	dotenv := map[string]string{}
	if cs.envFile != "" {
		if _, err := os.Stat(cs.envFile); err == nil {
			dotenv, err = godotenv.Read(cs.envFile)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", cs.envFile, err)
			}
		}
	}

	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := lookup(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := lookup(EnvToken); v != "" {
		cfg.Token = v
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		APIURL:          "http://localhost:8080",
		Timeout:         "10s",
		RetryMax:        2,
		PageSize:        10,
		BulkConcurrency: 4,
		LogFile:         "backoffice.log",
		Lists:           make(map[string]ListSettings),
		Detail: DetailSettings{
			NavigatePolicy: NavigateOnSuccess,
		},
		UISettings: UISettings{
			ShowFillerRows: true,
			ConfirmBulk:    true,
		},
	}
}
