package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration. Values come from an optional
// YAML file, overridden by WEBLOG_* environment variables.
type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration
	PageSize  int
}

// fileConfig is the on-disk YAML shape. Durations are strings in Go
// duration syntax ("24h", "30m").
type fileConfig struct {
	Addr      string `yaml:"addr"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`
	TokenTTL  string `yaml:"token_ttl"`
	PageSize  int    `yaml:"page_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:     "127.0.0.1:3000",
		DBPath:   "data/badger",
		TokenTTL: 24 * time.Hour,
		PageSize: 5,
	}
}

// Load reads the config file at path (ignored if path is empty or the
// file does not exist), then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		} else {
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
			if err := cfg.merge(&fc); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return cfg, nil
}

func (c *Config) merge(fc *fileConfig) error {
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.JWTSecret != "" {
		c.JWTSecret = fc.JWTSecret
	}
	if fc.TokenTTL != "" {
		d, err := time.ParseDuration(fc.TokenTTL)
		if err != nil {
			return fmt.Errorf("parsing token_ttl: %w", err)
		}
		c.TokenTTL = d
	}
	if fc.PageSize > 0 {
		c.PageSize = fc.PageSize
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WEBLOG_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("WEBLOG_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("WEBLOG_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("WEBLOG_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.TokenTTL = d
		}
	}
	if v := os.Getenv("WEBLOG_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PageSize = n
		}
	}
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 bytes")
	}
	return nil
}
