// Package config defines the data structures related to configuration and
// includes functions for loading, validating and exporting the rate policy.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/fincalc/pkg/configprocessor"
	"github.com/iwvelando/fincalc/pkg/constants"
	"github.com/iwvelando/fincalc/pkg/rates"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for fincalc.
type Configuration struct {
	Logging    LoggingConfig                 `yaml:"logging,omitempty" mapstructure:"logging"`
	Output     OutputConfig                  `yaml:"output,omitempty" mapstructure:"output"`
	Rates      map[string]float64            `yaml:"rates" mapstructure:"rates"`
	Schemes    map[string]rates.SchemeLimits `yaml:"schemes" mapstructure:"schemes"`
	LoanTypes  []rates.LoanType              `yaml:"loanTypes" mapstructure:"loanTypes"`
	Currency   map[string]map[string]float64 `yaml:"currency" mapstructure:"currency"`
	Tax        rates.TaxPolicy               `yaml:"tax" mapstructure:"tax"`
	PPF        rates.PPFRules                `yaml:"ppf" mapstructure:"ppf"`
	Benchmarks rates.Benchmarks              `yaml:"benchmarks" mapstructure:"benchmarks"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there on top of the built-in defaults. An empty path loads
// the defaults and environment overrides only.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %w", err)
		}
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML configuration from r on top of
// the built-in defaults.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}
	return decode(v)
}

// newViper returns a dedicated viper instance with defaults and FINCALC_
// environment overrides, e.g. FINCALC_RATES_PPF=7.5.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	// viper lower-cases keys; currency codes are upper case.
	currency := make(map[string]map[string]float64, len(configuration.Currency))
	for from, row := range configuration.Currency {
		normalized := make(map[string]float64, len(row))
		for to, rate := range row {
			normalized[rates.NormalizeCurrency(to)] = rate
		}
		currency[rates.NormalizeCurrency(from)] = normalized
	}
	configuration.Currency = currency

	return &configuration, nil
}

// Policy converts the configuration into the input of rates.New.
func (c *Configuration) Policy() rates.Policy {
	return rates.Policy{
		Rates:      c.Rates,
		Schemes:    c.Schemes,
		LoanTypes:  c.LoanTypes,
		Currency:   c.Currency,
		Tax:        c.Tax,
		PPF:        c.PPF,
		Benchmarks: c.Benchmarks,
	}
}

// Table builds the immutable rate table described by the configuration.
func (c *Configuration) Table() (*rates.Table, error) {
	table, err := rates.New(c.Policy())
	if err != nil {
		return nil, fmt.Errorf("invalid rate policy: %w", err)
	}
	return table, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	processor := configprocessor.NewProcessor()
	return processor.ValidatePolicy(c.Policy())
}

// WriteYAML writes the configuration as YAML, e.g. to seed a policy file
// from the defaults.
func (c *Configuration) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return encoder.Close()
}
