// Package config loads autoplan settings from a YAML file and the
// environment. Missing files yield defaults; AUTOPLAN_* variables override
// whatever the file says.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "autoplan.yaml"

const envPrefix = "AUTOPLAN_"

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
}

// RedisConfig selects the redis memory store. An empty Addr keeps memory
// in-process.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// MemoryConfig hardens stored agent memories. EncryptionKey and
// FallbackKeys are base64-encoded 32-byte AES keys. Dir persists memory to
// disk when redis is not configured.
type MemoryConfig struct {
	Dir           string   `yaml:"dir"`
	EncryptionKey string   `yaml:"encryption_key"`
	FallbackKeys  []string `yaml:"fallback_keys"`
	PIIPatterns   []string `yaml:"pii_patterns"`
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	Index     string       `yaml:"index"`
	Server    ServerConfig `yaml:"server"`
	Redis     RedisConfig  `yaml:"redis"`
	Memory    MemoryConfig `yaml:"memory"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
			RateLimit:       20,
			RateBurst:       40,
		},
		Redis: RedisConfig{
			Prefix: "autoplan:memory:",
		},
	}
}

// Load reads path (DefaultFile when empty) over the defaults and applies
// environment overrides. A missing file is not an error unless path was
// given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_FORMAT":     &c.LogFormat,
		"INDEX":          &c.Index,
		"ADDR":           &c.Server.Addr,
		"REDIS_ADDR":     &c.Redis.Addr,
		"REDIS_PASSWORD": &c.Redis.Password,
		"REDIS_PREFIX":   &c.Redis.Prefix,
		"MEMORY_KEY":     &c.Memory.EncryptionKey,
		"MEMORY_DIR":     &c.Memory.Dir,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "PII_PATTERNS"); ok {
		c.Memory.PIIPatterns = splitList(v)
	}
	if v, ok := lookup(envPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", envPrefix, err)
		}
		c.Redis.DB = db
	}
	if v, ok := lookup(envPrefix + "RATE_LIMIT"); ok {
		limit, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%sRATE_LIMIT: %w", envPrefix, err)
		}
		c.Server.RateLimit = limit
	}
	if v, ok := lookup(envPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sSHUTDOWN_TIMEOUT: %w", envPrefix, err)
		}
		c.Server.ShutdownTimeout = d
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
