package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/mawngo/gower/internal/gower"
	"github.com/mawngo/gower/internal/table"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "GOWER"

// Config represents the configuration of a distance run.
// Precedence from lowest to highest: defaults, environment, config file, flags.
type Config struct {
	Weights     map[string]float64 `yaml:"weights" envconfig:"WEIGHTS" validate:"dive,gte=0"`
	Types       map[string]string  `yaml:"types" envconfig:"TYPES" validate:"dive,oneof=numeric categorical symmetric-binary asymmetric-binary"`
	ZeroRange   string             `yaml:"zero_range" envconfig:"ZERO_RANGE" default:"match" validate:"oneof=match skip error"`
	Missing     []string           `yaml:"missing" envconfig:"MISSING"`
	ID          string             `yaml:"id" envconfig:"ID"`
	Sheet       string             `yaml:"sheet" envconfig:"SHEET"`
	Precision   int                `yaml:"precision" envconfig:"PRECISION" default:"7" validate:"gte=-1,lte=17"`
	Concurrency int                `yaml:"concurrency" envconfig:"CONCURRENCY" validate:"gte=0"`
	Files       int                `yaml:"files" envconfig:"FILES" default:"1" validate:"gte=1"`
}

// Load reads the environment, then overlays the YAML file at path when
// path is not empty.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Options converts the configuration into calculator options.
func (c *Config) Options() ([]gower.Option, error) {
	policy, err := gower.ParseZeroRangePolicy(c.ZeroRange)
	if err != nil {
		return nil, err
	}
	types := make(map[string]gower.FeatureType, len(c.Types))
	for name, s := range c.Types {
		ft, err := gower.ParseFeatureType(s)
		if err != nil {
			return nil, fmt.Errorf("type of %q: %w", name, err)
		}
		types[name] = ft
	}
	return []gower.Option{
		gower.WithWeights(c.Weights),
		gower.WithTypes(types),
		gower.WithZeroRange(policy),
		gower.WithConcurrency(c.Concurrency),
	}, nil
}

// ReadOptions converts the configuration into table loading options.
func (c *Config) ReadOptions() []table.ReadOption {
	var options []table.ReadOption
	if c.Missing != nil {
		options = append(options, table.WithMissing(c.Missing...))
	}
	if c.Sheet != "" {
		options = append(options, table.WithSheet(c.Sheet))
	}
	return options
}
