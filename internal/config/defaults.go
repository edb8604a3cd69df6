package config

import (
	_ "embed"
)

// Variant IDs with an embedded default config.
const (
	VariantStandard = "tetris"
	VariantClassic  = "tetris_classic"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

//go:embed defaults/tetris_classic.yaml
var defaultClassicYAML []byte

// embeddedDefaults maps a variant ID to its embedded YAML.
var embeddedDefaults = map[string][]byte{
	VariantStandard: defaultTetrisYAML,
	VariantClassic:  defaultClassicYAML,
}

// DefaultTetrisConfig returns the hardcoded standard configuration.
// It matches defaults/tetris.yaml and is used when the embedded file
// cannot be decoded.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Cols: 12,
			Rows: 20,
		},
		Timing: TimingConfig{
			GravityMS:  500,
			SoftDropMS: 10,
		},
		Rules: RulesConfig{
			ClearAllFullRows:  false,
			SoftDropHoldTicks: 6,
		},
		Colors: map[string]string{
			"I": "cyan",
			"J": "blue",
			"L": "orange",
			"O": "yellow",
			"S": "green",
			"T": "magenta",
			"Z": "red",
		},
	}
}

// DefaultClassicConfig returns the hardcoded classic configuration.
func DefaultClassicConfig() TetrisConfig {
	cfg := DefaultTetrisConfig()
	cfg.Board.Rows = 16
	cfg.Timing.GravityMS = 1000
	cfg.Colors = map[string]string{
		"I": "bright_cyan",
		"J": "bright_blue",
		"L": "orange",
		"O": "bright_yellow",
		"S": "bright_green",
		"T": "bright_magenta",
		"Z": "bright_red",
	}
	return cfg
}

// hardcodedDefault returns the fallback config for a variant.
func hardcodedDefault(variant string) TetrisConfig {
	if variant == VariantClassic {
		return DefaultClassicConfig()
	}
	return DefaultTetrisConfig()
}
