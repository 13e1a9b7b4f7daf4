package config

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
	"gopkg.in/yaml.v3"
)

// Config is the complete tradedash configuration
type Config struct {
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	Log       LogConfig       `json:"log" yaml:"log"`
}

// JournalConfig says where trades live and how new ones are normalized
type JournalConfig struct {
	DBPath    string `json:"db_path" yaml:"db_path"`
	Normalize string `json:"normalize" yaml:"normalize"` // none, sign or strict
}

// DashboardConfig holds the selection used when none is given
type DashboardConfig struct {
	DefaultRange string `json:"default_range" yaml:"default_range"`
}

// ServerConfig contains HTTP API parameters
type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"` // debug, info, warn, error
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// Load builds the effective configuration: defaults, then the config file
// (if path is set), then a .env file and TRADEDASH_* environment variables.
func Load(path string) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = readFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Fields the file leaves out keep their defaults.
	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TRADEDASH_DB"); v != "" {
		c.Journal.DBPath = v
	}
	if v := os.Getenv("TRADEDASH_NORMALIZE"); v != "" {
		c.Journal.Normalize = v
	}
	if v := os.Getenv("TRADEDASH_RANGE"); v != "" {
		c.Dashboard.DefaultRange = v
	}
	if v := os.Getenv("TRADEDASH_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TRADEDASH_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("TRADEDASH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRADEDASH_LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRADEDASH_LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = b
	}
	return nil
}

// Policy returns the configured normalization policy.
func (c *Config) Policy() journal.Policy {
	// Validate has already rejected unknown names.
	p, _ := journal.ParsePolicy(c.Journal.Normalize)
	return p
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if _, err := journal.ParsePolicy(c.Journal.Normalize); err != nil {
		return fmt.Errorf("journal.normalize: %w", err)
	}
	if c.Dashboard.DefaultRange != "" && !slices.Contains(analytics.Presets, c.Dashboard.DefaultRange) {
		return fmt.Errorf("dashboard.default_range: unknown preset %q", c.Dashboard.DefaultRange)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath:    "./tradedash.sqlite",
			Normalize: string(journal.NormalizeStrict),
		},
		Dashboard: DashboardConfig{
			DefaultRange: analytics.PresetMonthToDate,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
