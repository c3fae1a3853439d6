package config

import "sort"

var Presets = map[string]map[string]*Config{
	"growth": {
		"coarse": {
			Problem: "growth", Methods: []string{"rk4"},
			X0: "0", Y0: "1", H: "0.05", Steps: 40,
		},
		"fine": {
			Problem: "growth", Methods: []string{"rk4"},
			X0: "0", Y0: "1", H: "0.01", Steps: 200,
		},
		"compare": {
			Problem: "growth", Methods: []string{"rk4", "ab4"},
			X0: "0", Y0: "1", H: "0.01", Steps: 200,
		},
	},
	"gaussian": {
		"standard": {
			Problem: "gaussian", Methods: []string{"rk4", "ab4"},
			X0: "0", Y0: "6", H: "0.001", Steps: 2000,
		},
		"coarse": {
			Problem: "gaussian", Methods: []string{"rk4", "ab4"},
			X0: "0", Y0: "6", H: "0.01", Steps: 200,
		},
	},
	"decay": {
		"unit": {
			Problem: "decay", Methods: []string{"rk4", "ab4"},
			X0: "0", Y0: "1", H: "0.1", Steps: 50,
		},
	},
}

// GetPreset returns a full config for the preset, with defaults filled in
// for fields the preset leaves empty. It returns nil when not found.
func GetPreset(problem, name string) *Config {
	byName, ok := Presets[problem]
	if !ok {
		return nil
	}
	p, ok := byName[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Problem = p.Problem
	cfg.Methods = append([]string(nil), p.Methods...)
	cfg.X0, cfg.Y0, cfg.H = p.X0, p.Y0, p.H
	cfg.Steps = p.Steps
	return cfg
}

func ListPresets(problem string) []string {
	byName, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
