package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/fincalc/pkg/constants"
)

func writeServerConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), constants.DefaultServerConfigFile)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		contents string // empty means no file
		check    func(t *testing.T, cfg *Config)
	}{
		{
			name: "Missing file uses defaults",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Address != constants.DefaultServerAddress {
					t.Errorf("address = %q, want the default", cfg.Address)
				}
				if cfg.BodySizeBytes() != constants.DefaultMaxBodyBytes {
					t.Errorf("body limit = %d, want the default", cfg.BodySizeBytes())
				}
				if cfg.RatesFile != "" || cfg.WatchRates || cfg.ReloadSchedule != "" {
					t.Errorf("expected no reload settings by default, got %+v", cfg)
				}
			},
		},
		{
			name: "Full file",
			contents: `address: 127.0.0.1:9000
maxBodySize: 128K
ratesFile: /etc/fincalc/rates.yaml
reloadSchedule: "@every 1h"
watchRates: true
otelEndpoint: collector:4318
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Address != "127.0.0.1:9000" {
					t.Errorf("address = %q", cfg.Address)
				}
				if cfg.BodySizeBytes() != 128*1024 {
					t.Errorf("body limit = %d, want %d", cfg.BodySizeBytes(), 128*1024)
				}
				if cfg.RatesFile != "/etc/fincalc/rates.yaml" || !cfg.WatchRates || cfg.ReloadSchedule != "@every 1h" {
					t.Errorf("reload settings not applied: %+v", cfg)
				}
				if cfg.OTelEndpoint != "collector:4318" {
					t.Errorf("otel endpoint = %q", cfg.OTelEndpoint)
				}
				if cfg.Logging.Level != "debug" || cfg.Logging.OutputFile != "/tmp/server.log" {
					t.Errorf("logging = %+v", cfg.Logging)
				}
			},
		},
		{
			name:     "Blank address falls back",
			contents: "address: \"  \"\nmaxBodySize: 1MB\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Address != constants.DefaultServerAddress {
					t.Errorf("address = %q, want the default", cfg.Address)
				}
				if cfg.BodySizeBytes() != 1<<20 {
					t.Errorf("body limit = %d, want %d", cfg.BodySizeBytes(), 1<<20)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.contents != "" {
				path = writeServerConfig(t, tt.contents)
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := map[string]string{
		"size":     "maxBodySize: invalid",
		"schedule": "reloadSchedule: every now and then",
		"yaml":     "address: [",
	}

	for name, contents := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeServerConfig(t, contents)); err == nil {
				t.Fatal("expected an error but got nil")
			}
		})
	}
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg, _ := LoadConfig("")
	cfg.SetBodySizeBytes(2048)
	if cfg.BodySizeBytes() != 2048 || cfg.MaxBodySize != "2048" {
		t.Errorf("override not applied: %d %q", cfg.BodySizeBytes(), cfg.MaxBodySize)
	}
	cfg.SetBodySizeBytes(-1)
	if cfg.BodySizeBytes() != 2048 {
		t.Errorf("negative size should be ignored, got %d", cfg.BodySizeBytes())
	}
}

func TestParseSize(t *testing.T) {
	valid := []struct {
		input string
		want  int64
	}{
		{"", constants.DefaultMaxBodyBytes},
		{"1024", 1024},
		{"512b", 512},
		{"256K", 256 * 1024},
		{"1m", 1024 * 1024},
		{"3MB", 3 * 1024 * 1024},
		{"  4096   ", 4096},
	}
	for _, tt := range valid {
		got, err := ParseSize(tt.input)
		if err != nil {
			t.Errorf("ParseSize(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}

	for _, input := range []string{"1GB", "abc", "0", "-5K"} {
		if _, err := ParseSize(input); err == nil {
			t.Errorf("ParseSize(%q) expected an error", input)
		}
	}
}
