// Package config provides YAML-based game configuration loading and
// speed presets for the tetris variants.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrInvalidConfig is returned when a config file parses but describes an
// unplayable game.
var ErrInvalidConfig = errors.New("invalid config")

// Shape names used as keys of TetrisConfig.Colors.
var ShapeNames = []string{"I", "J", "L", "O", "S", "T", "Z"}

// TetrisConfig contains all configuration for one tetris variant.
type TetrisConfig struct {
	Board  BoardConfig       `yaml:"board"`
	Timing TimingConfig      `yaml:"timing"`
	Rules  RulesConfig       `yaml:"rules"`
	Colors map[string]string `yaml:"colors"`
}

// BoardConfig defines the well size.
type BoardConfig struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// TimingConfig defines gravity intervals in milliseconds.
type TimingConfig struct {
	GravityMS  int `yaml:"gravity_ms"`
	SoftDropMS int `yaml:"soft_drop_ms"`
}

// RulesConfig defines rule switches.
type RulesConfig struct {
	ClearAllFullRows  bool `yaml:"clear_all_full_rows"`
	SoftDropHoldTicks int  `yaml:"soft_drop_hold_ticks"`
}

// Validate checks that the config describes a playable game.
// Errors wrap ErrInvalidConfig.
func (c TetrisConfig) Validate() error {
	var problems []string

	if c.Board.Cols < 4 || c.Board.Rows < 4 {
		problems = append(problems, fmt.Sprintf("board %dx%d is smaller than 4x4", c.Board.Cols, c.Board.Rows))
	}
	if c.Timing.GravityMS <= 0 {
		problems = append(problems, fmt.Sprintf("gravity_ms must be positive, got %d", c.Timing.GravityMS))
	}
	if c.Timing.SoftDropMS <= 0 {
		problems = append(problems, fmt.Sprintf("soft_drop_ms must be positive, got %d", c.Timing.SoftDropMS))
	}
	if c.Rules.SoftDropHoldTicks < 0 {
		problems = append(problems, "soft_drop_hold_ticks must not be negative")
	}
	for name, color := range c.Colors {
		if !isShapeName(name) {
			problems = append(problems, fmt.Sprintf("unknown shape %q in colors", name))
			continue
		}
		if _, ok := core.ParseColor(color); !ok {
			problems = append(problems, fmt.Sprintf("unknown color %q for shape %s", color, name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// ShapeColor returns the color configured for a shape letter.
// Missing or unknown entries fall back to ColorWhite.
func (c TetrisConfig) ShapeColor(shape string) core.Color {
	if name, ok := c.Colors[shape]; ok {
		if color, ok := core.ParseColor(name); ok {
			return color
		}
	}
	return core.ColorWhite
}

func isShapeName(name string) bool {
	for _, s := range ShapeNames {
		if s == name {
			return true
		}
	}
	return false
}
