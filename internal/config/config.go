// Package config
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Root           string        `yaml:"root"`
	RunLevel       string        `yaml:"run_level"`
	ExportFormat   string        `yaml:"export_format"`
	ExportPath     string        `yaml:"export_path"`
	SampleInterval time.Duration `yaml:"sample_interval"`
	WtmpPath       string        `yaml:"wtmp"`
	NoColor        bool          `yaml:"no_color"`
	MaxWidth       int           `yaml:"max_width"`

	Address        string        `yaml:"http_addr"`
	Interval       time.Duration `yaml:"scrape_interval"`
	JWTSecret      string        `yaml:"-"`
	RateLimitRPS   float64       `yaml:"rate_limit_rps"`
	RateLimitBurst int           `yaml:"rate_limit_burst"`
	TrustedProxies []string      `yaml:"trusted_proxies"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatLog  = "log"
)

func Default() *Config {
	return &Config{
		Root:           "/",
		RunLevel:       "light",
		ExportPath:     ".",
		SampleInterval: 500 * time.Millisecond,
		WtmpPath:       "/var/log/wtmp",
		MaxWidth:       40,
		Address:        ":3000",
		Interval:       5 * time.Second,
		RateLimitRPS:   2,
		RateLimitBurst: 5,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load layers defaults, the optional YAML file named by PROBE_CONFIG, and
// the environment (after .env). Flags are applied by the caller.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("PROBE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Root, "PROBE_ROOT")
	setString(&c.RunLevel, "PROBE_VERBOSITY")
	setString(&c.ExportFormat, "PROBE_EXPORT_FORMAT")
	setString(&c.ExportPath, "PROBE_EXPORT_PATH")
	setString(&c.WtmpPath, "PROBE_WTMP")
	setString(&c.Address, "HTTP_ADDR")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if raw := os.Getenv("TRUSTED_PROXIES"); raw != "" {
		c.TrustedProxies = strings.Split(raw, ",")
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.NoColor = true
	}

	if err := setDuration(&c.SampleInterval, "PROBE_SAMPLE_INTERVAL"); err != nil {
		return err
	}
	if err := setDuration(&c.Interval, "SCRAPE_INTERVAL"); err != nil {
		return err
	}

	if raw := os.Getenv("PROBE_MAX_WIDTH"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("PROBE_MAX_WIDTH: %w", err)
		}
		c.MaxWidth = n
	}
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = f
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.ExportFormat) {
	case "", FormatJSON, FormatCSV, FormatLog:
	default:
		return fmt.Errorf("unsupported export format %q (want json, csv or log)", c.ExportFormat)
	}
	switch strings.ToLower(c.RunLevel) {
	case "light", "balanced", "deep", "basic", "detailed", "full", "1", "2", "3", "v", "vv", "vvv":
	default:
		return fmt.Errorf("unknown run level %q (want light, balanced or deep)", c.RunLevel)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.SampleInterval < 0 {
		return errors.New("sample interval must not be negative")
	}
	if c.Interval <= 0 {
		return errors.New("scrape interval must be positive")
	}
	if c.MaxWidth < 0 {
		return errors.New("max width must not be negative")
	}
	for _, p := range c.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			return fmt.Errorf("invalid trusted proxy %q", p)
		}
	}
	return nil
}
