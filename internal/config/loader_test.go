package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search path only sees files the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		variant  string
		expected TetrisConfig
	}{
		{VariantStandard, DefaultTetrisConfig()},
		{VariantClassic, DefaultClassicConfig()},
	}

	for _, tc := range tests {
		t.Run(tc.variant, func(t *testing.T) {
			cfg := Default(tc.variant)
			if cfg.Board != tc.expected.Board {
				t.Errorf("Board = %+v, expected %+v", cfg.Board, tc.expected.Board)
			}
			if cfg.Timing != tc.expected.Timing {
				t.Errorf("Timing = %+v, expected %+v", cfg.Timing, tc.expected.Timing)
			}
			if cfg.Rules != tc.expected.Rules {
				t.Errorf("Rules = %+v, expected %+v", cfg.Rules, tc.expected.Rules)
			}
			for _, shape := range ShapeNames {
				if cfg.Colors[shape] != tc.expected.Colors[shape] {
					t.Errorf("Colors[%s] = %q, expected %q", shape, cfg.Colors[shape], tc.expected.Colors[shape])
				}
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("embedded default is invalid: %v", err)
			}
		})
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load(VariantStandard, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Board.Cols != 12 || cfg.Board.Rows != 20 || cfg.Timing.GravityMS != 500 {
		t.Errorf("Load() = %+v, expected the 12x20/500ms default", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "tetris.yaml"), "timing:\n  gravity_ms: 300\n")
	cfg, err := Load(VariantStandard, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timing.GravityMS != 300 {
		t.Errorf("local config: GravityMS = %d, expected 300", cfg.Timing.GravityMS)
	}

	// User directory wins over ./configs
	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), "timing:\n  gravity_ms: 200\n")
	cfg, err = Load(VariantStandard, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timing.GravityMS != 200 {
		t.Errorf("user config: GravityMS = %d, expected 200", cfg.Timing.GravityMS)
	}

	// Custom path wins over everything
	custom := filepath.Join(work, "mine.yaml")
	writeFile(t, custom, "timing:\n  gravity_ms: 100\n")
	cfg, err = Load(VariantStandard, custom)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timing.GravityMS != 100 {
		t.Errorf("custom config: GravityMS = %d, expected 100", cfg.Timing.GravityMS)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	_, work := isolate(t)
	custom := filepath.Join(work, "partial.yaml")
	writeFile(t, custom, "rules:\n  clear_all_full_rows: true\ncolors:\n  I: white\n")

	cfg, err := Load(VariantClassic, custom)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Rules.ClearAllFullRows {
		t.Error("ClearAllFullRows should be set from the file")
	}
	if cfg.Board.Rows != 16 || cfg.Timing.GravityMS != 1000 {
		t.Errorf("unset keys should keep the classic defaults, got %+v", cfg)
	}
	if cfg.ShapeColor("I") != core.ColorWhite {
		t.Errorf("ShapeColor(I) = %v, expected white", cfg.ShapeColor("I"))
	}
	if cfg.ShapeColor("Z") != core.ColorBrightRed {
		t.Errorf("ShapeColor(Z) = %v, expected bright_red", cfg.ShapeColor("Z"))
	}
}

func TestLoadCustomErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := Load(VariantStandard, filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(work, "broken.yaml")
	writeFile(t, broken, "board: [not, a, map\n")
	if _, err := Load(VariantStandard, broken); err == nil {
		t.Error("unparseable custom file should fail")
	}

	invalid := filepath.Join(work, "invalid.yaml")
	writeFile(t, invalid, "board:\n  cols: 2\n")
	_, err := Load(VariantStandard, invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestLoadSkipsInvalidSearchFiles(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), "timing:\n  gravity_ms: -5\n")

	cfg, err := Load(VariantStandard, "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timing.GravityMS != 500 {
		t.Errorf("GravityMS = %d, expected embedded 500", cfg.Timing.GravityMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TetrisConfig)
		valid  bool
	}{
		{"default", func(*TetrisConfig) {}, true},
		{"tiny board", func(c *TetrisConfig) { c.Board.Rows = 3 }, false},
		{"zero gravity", func(c *TetrisConfig) { c.Timing.GravityMS = 0 }, false},
		{"zero soft drop", func(c *TetrisConfig) { c.Timing.SoftDropMS = 0 }, false},
		{"negative hold", func(c *TetrisConfig) { c.Rules.SoftDropHoldTicks = -1 }, false},
		{"unknown shape", func(c *TetrisConfig) { c.Colors["X"] = "red" }, false},
		{"unknown color", func(c *TetrisConfig) { c.Colors["T"] = "plaid" }, false},
		{"no colors", func(c *TetrisConfig) { c.Colors = nil }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSpeedPresets(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"easy", 800},
		{"normal", 500},
		{"HARD", 250},
		{"", 1000}, // unchanged classic gravity
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := ParseSpeedPreset(tc.name)
			if err != nil {
				t.Fatalf("ParseSpeedPreset(%q) error = %v", tc.name, err)
			}
			cfg := DefaultClassicConfig()
			ApplySpeedPreset(&cfg, p)
			if cfg.Timing.GravityMS != tc.expected {
				t.Errorf("GravityMS = %d, expected %d", cfg.Timing.GravityMS, tc.expected)
			}
		})
	}

	if _, err := ParseSpeedPreset("fixed"); err == nil {
		t.Error("ParseSpeedPreset(fixed) should fail")
	}
}
