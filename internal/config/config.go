// Package config loads the optional YAML configuration file for ledger.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/ledger/internal/constants"
)

// Config represents the complete ledger configuration
type Config struct {
	Limits LimitsConfig `yaml:"limits"`
	Server ServerConfig `yaml:"server"`
	AI     AIConfig     `yaml:"ai"`
	Log    LogConfig    `yaml:"log"`
}

// LimitsConfig bounds the length of each free-text field of an entry.
// Lengths are counted in characters.
type LimitsConfig struct {
	WorkMin    int `yaml:"work_min"`
	WorkMax    int `yaml:"work_max"`
	LearnMax   int `yaml:"learn_max"`
	LeakMax    int `yaml:"leak_max"`
	ThoughtMax int `yaml:"thought_max"`
	ContextMax int `yaml:"context_max"`
}

// ServerConfig configures the local HTTP API
type ServerConfig struct {
	// Addr is the listen address (default: 127.0.0.1:8417)
	Addr string `yaml:"addr"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AIConfig configures the enrichment provider
type AIConfig struct {
	// Model overrides the model stored in settings when non-empty
	Model string `yaml:"model"`
	// Timeout is the maximum time to wait for a provider response
	Timeout time.Duration `yaml:"timeout"`
}

// LogConfig controls the log level and rotation of the log file
type LogConfig struct {
	// Level is one of debug, info, warn, error; --debug forces debug
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	// Compress gzips rotated files (default: true)
	Compress *bool `yaml:"compress"`
}

// Compressed reports whether rotated log files are gzipped
func (l LogConfig) Compressed() bool {
	return l.Compress == nil || *l.Compress
}

// DefaultConfig returns a Config with the stock limits
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			WorkMin:    constants.WorkMin,
			WorkMax:    constants.WorkMax,
			LearnMax:   constants.LearnMax,
			LeakMax:    constants.LeakMax,
			ThoughtMax: constants.ThoughtMax,
			ContextMax: constants.ContextMax,
		},
		Server: ServerConfig{
			Addr:            constants.DefaultServerAddr,
			ShutdownTimeout: 5 * time.Second,
		},
		AI: AIConfig{
			Timeout: constants.DefaultAITimeout,
		},
		Log: LogConfig{
			Level:      constants.DefaultLogLevel,
			MaxSizeMB:  constants.DefaultLogMaxSizeMB,
			MaxBackups: constants.DefaultLogMaxBackups,
			MaxAgeDays: constants.DefaultLogMaxAgeDays,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	l := c.Limits
	if l.WorkMin < 0 {
		return fmt.Errorf("limits.work_min must be >= 0")
	}
	if l.WorkMax <= 0 || l.WorkMax < l.WorkMin {
		return fmt.Errorf("limits.work_max must be positive and >= work_min")
	}
	if l.LearnMax <= 0 {
		return fmt.Errorf("limits.learn_max must be positive")
	}
	if l.LeakMax <= 0 {
		return fmt.Errorf("limits.leak_max must be positive")
	}
	if l.ThoughtMax <= 0 || l.ContextMax <= 0 {
		return fmt.Errorf("limits.thought_max and limits.context_max must be positive")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	if c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log.max_backups and log.max_age_days must be >= 0")
	}
	return nil
}

// Merge overlays the non-zero values of other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	mergeInt(&c.Limits.WorkMin, other.Limits.WorkMin)
	mergeInt(&c.Limits.WorkMax, other.Limits.WorkMax)
	mergeInt(&c.Limits.LearnMax, other.Limits.LearnMax)
	mergeInt(&c.Limits.LeakMax, other.Limits.LeakMax)
	mergeInt(&c.Limits.ThoughtMax, other.Limits.ThoughtMax)
	mergeInt(&c.Limits.ContextMax, other.Limits.ContextMax)

	if other.Server.Addr != "" {
		c.Server.Addr = other.Server.Addr
	}
	if other.Server.ShutdownTimeout != 0 {
		c.Server.ShutdownTimeout = other.Server.ShutdownTimeout
	}
	if other.AI.Model != "" {
		c.AI.Model = other.AI.Model
	}
	if other.AI.Timeout != 0 {
		c.AI.Timeout = other.AI.Timeout
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	mergeInt(&c.Log.MaxSizeMB, other.Log.MaxSizeMB)
	mergeInt(&c.Log.MaxBackups, other.Log.MaxBackups)
	mergeInt(&c.Log.MaxAgeDays, other.Log.MaxAgeDays)
	if other.Log.Compress != nil {
		compress := *other.Log.Compress
		c.Log.Compress = &compress
	}
}

func mergeInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// LoadFromFile reads a single YAML file without applying defaults
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Load returns the defaults overlaid with the file at path, if it exists.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		switch {
		case err == nil:
			cfg.Merge(fileCfg)
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
