package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsearch/search"
	"github.com/katalvlaran/lvsearch/ssp"
	"github.com/katalvlaran/lvsearch/tabu"
)

// ErrConfigFormat is returned for config files that are neither TOML nor YAML.
var ErrConfigFormat = errors.New("cli: unsupported config format (want .toml, .yaml or .yml)")

var validate = validator.New(validator.WithRequiredStructEnabled())

// RunConfig holds the parameters of one CLI run: the search options and the
// shape of the random instance. It is filled from defaults, then from the
// --config file, then from explicitly set flags.
type RunConfig struct {
	Iterations        int           `toml:"iterations" yaml:"iterations" validate:"gte=0"`
	Tenure            float64       `toml:"tenure" yaml:"tenure" validate:"gte=0"`
	Policy            string        `toml:"policy" yaml:"policy" validate:"oneof=hard soft"`
	Seed              int64         `toml:"seed" yaml:"seed"`
	TimeLimit         time.Duration `toml:"time_limit" yaml:"time_limit" validate:"gte=0"`
	Diversify         bool          `toml:"diversify" yaml:"diversify"`
	DriftCheck        int           `toml:"drift_check" yaml:"drift_check" validate:"gte=0"`
	MaxBlockedRetries int           `toml:"max_blocked_retries" yaml:"max_blocked_retries" validate:"gte=1"`

	// Instance shape.
	Nodes   int     `toml:"nodes" yaml:"nodes" validate:"gte=1"`
	Density float64 `toml:"density" yaml:"density" validate:"gte=0,lte=1"`
	Colors  int     `toml:"colors" yaml:"colors" validate:"gte=1"`
	Scale   int     `toml:"scale" yaml:"scale" validate:"gte=1"`

	// Plateau search.
	Length    int    `toml:"length" yaml:"length" validate:"gte=0"`
	Expansion string `toml:"expansion" yaml:"expansion" validate:"oneof=random static dynamic"`

	// Runs is the number of seeds the bench command tries.
	Runs int `toml:"runs" yaml:"runs" validate:"gte=1"`
}

// DefaultRunConfig returns the configuration used when nothing is set.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Iterations:        search.DefaultMaxIterations,
		Tenure:            search.DefaultTenure,
		Policy:            tabu.Hard.String(),
		Seed:              search.DefaultSeed,
		MaxBlockedRetries: search.DefaultMaxBlockedRetries,
		Nodes:             50,
		Density:           0.3,
		Colors:            4,
		Scale:             10,
		Length:            5,
		Expansion:         ssp.ExpandRandom.String(),
		Runs:              10,
	}
}

// LoadRunConfig decodes the file at path into cfg; the format follows the
// file extension. Keys absent from the file leave cfg untouched.
func LoadRunConfig(path string, cfg *RunConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%s: %w", path, ErrConfigFormat)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

// Validate checks every field against its struct tag.
func (c RunConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid run config: %w", err)
	}
	return nil
}

// Options converts the config into search options.
func (c RunConfig) Options() (search.Options, error) {
	policy, err := tabu.ParsePolicy(c.Policy)
	if err != nil {
		return search.Options{}, err
	}

	o := search.DefaultOptions()
	o.MaxIterations = c.Iterations
	o.Tenure = c.Tenure
	o.Policy = policy
	o.Seed = c.Seed
	o.TimeLimit = c.TimeLimit
	o.Diversify = c.Diversify
	o.DriftCheckEvery = c.DriftCheck
	o.MaxBlockedRetries = c.MaxBlockedRetries

	return o, o.Validate()
}

// Plateau converts the plateau keys; Diversify turns on long-term memory.
func (c RunConfig) Plateau() (ssp.Plateau, error) {
	e, err := ssp.ParseExpansion(c.Expansion)
	if err != nil {
		return ssp.Plateau{}, err
	}
	p := ssp.Plateau{Length: c.Length, Expansion: e, Memory: c.Diversify}

	return p, p.Validate()
}

// runFlag ties a command-line flag to the config field it overrides.
type runFlag struct {
	name  string
	apply func(dst *RunConfig, src RunConfig)
}

var runFlags = []runFlag{
	{"iterations", func(d *RunConfig, s RunConfig) { d.Iterations = s.Iterations }},
	{"tenure", func(d *RunConfig, s RunConfig) { d.Tenure = s.Tenure }},
	{"policy", func(d *RunConfig, s RunConfig) { d.Policy = s.Policy }},
	{"seed", func(d *RunConfig, s RunConfig) { d.Seed = s.Seed }},
	{"time-limit", func(d *RunConfig, s RunConfig) { d.TimeLimit = s.TimeLimit }},
	{"diversify", func(d *RunConfig, s RunConfig) { d.Diversify = s.Diversify }},
	{"drift-check", func(d *RunConfig, s RunConfig) { d.DriftCheck = s.DriftCheck }},
	{"max-blocked-retries", func(d *RunConfig, s RunConfig) { d.MaxBlockedRetries = s.MaxBlockedRetries }},
	{"nodes", func(d *RunConfig, s RunConfig) { d.Nodes = s.Nodes }},
	{"density", func(d *RunConfig, s RunConfig) { d.Density = s.Density }},
	{"colors", func(d *RunConfig, s RunConfig) { d.Colors = s.Colors }},
	{"scale", func(d *RunConfig, s RunConfig) { d.Scale = s.Scale }},
	{"length", func(d *RunConfig, s RunConfig) { d.Length = s.Length }},
	{"expansion", func(d *RunConfig, s RunConfig) { d.Expansion = s.Expansion }},
	{"runs", func(d *RunConfig, s RunConfig) { d.Runs = s.Runs }},
}

// resolveConfig layers defaults, the optional config file and the flags the
// user set explicitly, then validates the result.
func resolveConfig(path string, flags RunConfig, changed func(name string) bool) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if path != "" {
		if err := LoadRunConfig(path, &cfg); err != nil {
			return RunConfig{}, err
		}
	}
	for _, f := range runFlags {
		if changed(f.name) {
			f.apply(&cfg, flags)
		}
	}

	return cfg, cfg.Validate()
}
