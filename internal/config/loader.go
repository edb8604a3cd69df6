package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration of a tetris variant.
// Search order: customPath -> ~/.tetris/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default.
//
// Files are decoded on top of the variant's defaults, so a file may set only
// the keys it changes. A custom path must exist and be valid; broken files
// found by the search are skipped.
func Load(variant, customPath string) (TetrisConfig, error) {
	if customPath != "" {
		return loadFile(variant, customPath)
	}

	filename := variant + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, err := loadFile(variant, userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(variant, filepath.Join("configs", filename)); err == nil {
		return cfg, nil
	}

	return Default(variant), nil
}

// Default returns the embedded default config of a variant. Unknown variants
// get the standard board.
func Default(variant string) TetrisConfig {
	data, ok := embeddedDefaults[variant]
	if !ok {
		data = defaultTetrisYAML
	}

	var cfg TetrisConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil || cfg.Validate() != nil {
		return hardcodedDefault(variant) // Fallback to hardcoded if embed fails
	}
	return cfg
}

// loadFile decodes path on top of the variant default and validates it.
func loadFile(variant, path string) (TetrisConfig, error) {
	cfg := Default(variant)

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
