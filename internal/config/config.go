package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "AMS_"

type Config struct {
	ServerPort     string        `koanf:"server_port"`
	SessionSecret  string        `koanf:"session_secret"`
	SessionTTL     time.Duration `koanf:"session_ttl"`
	MaxUploadBytes int64         `koanf:"max_upload_bytes"`
	DBDSN          string        `koanf:"db_dsn"` // пустой — журнал действий выключен
	GinMode        string        `koanf:"gin_mode"`
}

func Default() *Config {
	return &Config{
		ServerPort:     "8080",
		SessionTTL:     2 * time.Hour,
		MaxUploadBytes: 10 << 20,
		GinMode:        "release",
	}
}

// Load builds the config from defaults, then the optional YAML file at path
// (or AMS_CONFIG), then AMS_* environment variables. A .env file in the
// working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session_secret is not set")
	}
	if len(c.SessionSecret) < 16 {
		return errors.New("session_secret must be at least 16 bytes")
	}
	if c.ServerPort == "" {
		return errors.New("server_port is required")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("max_upload_bytes must be positive")
	}
	if c.SessionTTL < 0 {
		return errors.New("session_ttl must be non-negative")
	}
	return nil
}
