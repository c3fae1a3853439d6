package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces environment overrides, e.g. DECSIM_PRECISION.
const EnvPrefix = "decsim"

// Env holds the settings that may be overridden from the environment.
// Zero values leave the config untouched.
type Env struct {
	Precision uint32 `envconfig:"PRECISION"`
	Rounding  string `envconfig:"ROUNDING"`
	XDigits   uint32 `envconfig:"X_DIGITS"`
	ErrDigits uint32 `envconfig:"ERR_DIGITS"`
}

func ApplyEnv(cfg *Config) error {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return err
	}

	if env.Precision != 0 {
		cfg.Precision = env.Precision
	}
	if env.Rounding != "" {
		cfg.Rounding = env.Rounding
	}
	if env.XDigits != 0 {
		cfg.Display.XDigits = env.XDigits
	}
	if env.ErrDigits != 0 {
		cfg.Display.ErrDigits = env.ErrDigits
	}
	return nil
}
