package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/iwvelando/fincalc/internal/config"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of `fincalc serve`, read from
// server-config.yaml.
type Config struct {
	Address        string               `yaml:"address"`
	MaxBodySize    string               `yaml:"maxBodySize"`    // e.g. "64K"
	RatesFile      string               `yaml:"ratesFile"`      // policy served; empty uses the CLI -config
	ReloadSchedule string               `yaml:"reloadSchedule"` // cron spec, e.g. "@every 1h"
	WatchRates     bool                 `yaml:"watchRates"`
	OTelEndpoint   string               `yaml:"otelEndpoint"`
	OTelInsecure   bool                 `yaml:"otelInsecure"`
	Logging        config.LoggingConfig `yaml:"logging"`
	bodySizeBytes  int64
}

func defaultConfig() *Config {
	return &Config{
		Address:       constants.DefaultServerAddress,
		bodySizeBytes: constants.DefaultMaxBodyBytes,
	}
}

// LoadConfig reads the server configuration at path. A missing file, or an
// empty path, yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// BodySizeBytes returns the request body limit in bytes.
func (c *Config) BodySizeBytes() int64 {
	return c.bodySizeBytes
}

// SetBodySizeBytes overrides the request body limit. Non-positive sizes are
// ignored.
func (c *Config) SetBodySizeBytes(size int64) {
	if size <= 0 {
		return
	}
	c.bodySizeBytes = size
	c.MaxBodySize = strconv.FormatInt(size, 10)
}

func (c *Config) normalize() error {
	c.Address = strings.TrimSpace(c.Address)
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	c.ReloadSchedule = strings.TrimSpace(c.ReloadSchedule)
	if c.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.ReloadSchedule); err != nil {
			return fmt.Errorf("reloadSchedule %q: %w", c.ReloadSchedule, err)
		}
	}

	size, err := ParseSize(c.MaxBodySize)
	if err != nil {
		return err
	}
	c.bodySizeBytes = size
	return nil
}

// sizeUnits is checked in order, so two-letter suffixes come first.
var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"KB", 1 << 10},
	{"MB", 1 << 20},
	{"K", 1 << 10},
	{"M", 1 << 20},
	{"B", 1},
}

// ParseSize converts sizes such as "512", "256K" or "1MB" into bytes. An
// empty value is the default body limit.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxBodyBytes, nil
	}

	multiplier := int64(1)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(s, unit.suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			multiplier = unit.multiplier
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive, got %q", value)
	}
	if n > (1<<63-1)/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	return n * multiplier, nil
}
