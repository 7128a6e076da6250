package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the server and CLI configuration.
type Config struct {
	Port             string   `toml:"port"`
	DatabaseURL      string   `toml:"database_url"`
	GeneratorURL     string   `toml:"generator_url"`
	GeneratorTimeout Duration `toml:"generator_timeout"`
	TemplatesDir     string   `toml:"templates_dir"`
	ChromePath       string   `toml:"chrome_path"`
	LogLevel         string   `toml:"log_level"`
	LogColor         bool     `toml:"log_color"`
	AllowOrigins     []string `toml:"cors_allow_origins"`
	BodyLimit        int      `toml:"body_limit"` // bytes
}

// Duration reads TOML strings like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:             "3000",
		GeneratorURL:     "http://localhost:8000",
		GeneratorTimeout: Duration{30 * time.Second},
		TemplatesDir:     "templates",
		LogLevel:         "info",
		AllowOrigins:     []string{"*"},
		BodyLimit:        4 * 1024 * 1024,
	}
}

// Load applies, in order: defaults, the TOML file at path (skipped when path
// is empty or the file does not exist), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set("PORT", &c.Port)
	set("DATABASE_URL", &c.DatabaseURL)
	set("GENERATOR_URL", &c.GeneratorURL)
	set("TEMPLATES_DIR", &c.TemplatesDir)
	set("CHROME_PATH", &c.ChromePath)
	set("LOG_LEVEL", &c.LogLevel)

	if v := getenv("CORS_ALLOW_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowOrigins = origins
	}
	if v := getenv("LOG_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_COLOR: %w", err)
		}
		c.LogColor = b
	}
	if v := getenv("BODY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BODY_LIMIT: %w", err)
		}
		c.BodyLimit = n
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
