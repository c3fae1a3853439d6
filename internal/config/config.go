package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/cockroachdb/apd/v3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/decsim/internal/dynamo"
)

const (
	DefaultProblem       = "growth"
	DefaultMethod        = "rk4"
	DefaultX0            = "0"
	DefaultY0            = "1"
	DefaultH             = "0.05"
	DefaultSteps         = 40
	DefaultRounding      = "half_even"
	DefaultXDigits       = 3
	DefaultDisplayDigits = 10
)

// Decimal values are kept as strings so a value like 0.05 stays exact.
type Config struct {
	Problem   string        `yaml:"problem"`
	Methods   []string      `yaml:"methods"`
	X0        string        `yaml:"x0"`
	Y0        string        `yaml:"y0"`
	H         string        `yaml:"h"`
	Steps     int           `yaml:"steps"`
	Precision uint32        `yaml:"precision"`
	Rounding  string        `yaml:"rounding"`
	Display   DisplayConfig `yaml:"display"`
}

// DisplayConfig controls presentation only; it never reaches a run.
type DisplayConfig struct {
	XDigits   uint32 `yaml:"x_digits"`
	ErrDigits uint32 `yaml:"err_digits"`
}

var roundings = map[string]apd.Rounder{
	"half_even": apd.RoundHalfEven,
	"half_up":   apd.RoundHalfUp,
	"half_down": apd.RoundHalfDown,
	"down":      apd.RoundDown,
	"up":        apd.RoundUp,
	"ceiling":   apd.RoundCeiling,
	"floor":     apd.RoundFloor,
}

func DefaultConfig() *Config {
	return &Config{
		Problem:   DefaultProblem,
		Methods:   []string{DefaultMethod},
		X0:        DefaultX0,
		Y0:        DefaultY0,
		H:         DefaultH,
		Steps:     DefaultSteps,
		Precision: dynamo.DefaultPrecision,
		Rounding:  DefaultRounding,
		Display: DisplayConfig{
			XDigits:   DefaultXDigits,
			ErrDigits: DefaultDisplayDigits,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Roundings lists the accepted rounding mode names.
func Roundings() []string {
	names := make([]string, 0, len(roundings))
	for name := range roundings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunConfig parses the decimal fields and builds the run's own context.
func (c *Config) RunConfig() (dynamo.Config, error) {
	rounding, ok := roundings[c.Rounding]
	if !ok {
		return dynamo.Config{}, fmt.Errorf("unknown rounding: %s (available: %v)", c.Rounding, Roundings())
	}
	if c.Precision == 0 {
		return dynamo.Config{}, fmt.Errorf("precision must be positive")
	}

	x0, err := parseDecimal("x0", c.X0)
	if err != nil {
		return dynamo.Config{}, err
	}
	y0, err := parseDecimal("y0", c.Y0)
	if err != nil {
		return dynamo.Config{}, err
	}
	h, err := parseDecimal("h", c.H)
	if err != nil {
		return dynamo.Config{}, err
	}

	run := dynamo.Config{
		X0:    x0,
		Y0:    y0,
		H:     h,
		Steps: c.Steps,
		Math:  dynamo.NewContext(c.Precision, rounding),
	}
	return run, run.Validate()
}

func parseDecimal(field, s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	if d.Form != apd.Finite {
		return nil, fmt.Errorf("invalid %s %q: not a finite number", field, s)
	}
	return d, nil
}
