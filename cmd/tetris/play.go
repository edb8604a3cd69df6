package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/gui"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagGUI        bool
	flagScale      int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: tetris).

Controls:
  Left/Right, A/D  - Move
  Up, W, Space     - Rotate clockwise
  Down, S          - Soft drop
  P                - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Difficulty options set the gravity interval:
  easy   - 800ms per row
  normal - 500ms per row
  hard   - 250ms per row

Examples:
  tetris play
  tetris play tetris_classic
  tetris play --difficulty hard
  tetris play --config ./wide.yaml
  tetris play --gui --scale 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Speed preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagGUI, "gui", false, "Play in a desktop window instead of the terminal")
	playCmd.Flags().IntVar(&flagScale, "scale", 1, "Window size multiplier for --gui")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := config.VariantStandard
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'tetris list' to see available variants", gameID)
	}

	// Validate flags up front; the game itself falls back to defaults silently.
	if _, err := config.ParseSpeedPreset(flagDifficulty); err != nil {
		return err
	}
	cfg, err := config.Load(gameID, flagConfig)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "variant", gameID,
		"board", fmt.Sprintf("%dx%d", cfg.Board.Cols, cfg.Board.Rows),
		"gravity_ms", cfg.Timing.GravityMS)

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	var runID int64
	if flagGUI {
		board, ok := game.(registry.BoardGame)
		if !ok {
			return fmt.Errorf("variant %q cannot be drawn in a window", gameID)
		}
		runID, err = gui.Run(board, runtimeConfig(), gui.Options{
			Store:  store,
			Logger: logger,
			Scale:  flagScale,
		})
	} else {
		var res tui.GameResult
		res, err = tui.Run(game, store, runtimeConfig())
		runID = res.RunID
	}
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if runID != 0 {
		fmt.Printf("Run saved as #%d. Watch it with 'tetris replay %d --watch'.\n", runID, runID)
	}
	return nil
}
