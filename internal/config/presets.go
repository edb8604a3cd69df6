package config

import (
	"fmt"
	"strings"
)

// SpeedPreset is a named gravity speed. Presets are static: the interval does
// not change while a game runs.
type SpeedPreset string

const (
	SpeedEasy   SpeedPreset = "easy"
	SpeedNormal SpeedPreset = "normal"
	SpeedHard   SpeedPreset = "hard"
)

// gravityForPreset maps presets to gravity intervals in milliseconds.
var gravityForPreset = map[SpeedPreset]int{
	SpeedEasy:   800,
	SpeedNormal: 500,
	SpeedHard:   250,
}

// ParseSpeedPreset validates a preset name. The empty string is accepted and
// means "keep the configured gravity".
func ParseSpeedPreset(name string) (SpeedPreset, error) {
	p := SpeedPreset(strings.ToLower(strings.TrimSpace(name)))
	if p == "" {
		return "", nil
	}
	if _, ok := gravityForPreset[p]; !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return p, nil
}

// ApplySpeedPreset sets the gravity interval of cfg from a preset.
// An empty preset leaves cfg unchanged.
func ApplySpeedPreset(cfg *TetrisConfig, preset SpeedPreset) {
	if ms, ok := gravityForPreset[preset]; ok {
		cfg.Timing.GravityMS = ms
	}
}
