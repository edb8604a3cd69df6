package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a game ends, you return to the menu to play again.
Tab opens the run history, where Enter replays the selected run.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - Run history
  Q            - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./runs.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStoreOptional()
	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("menu failed", "error", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRuns {
			if !showRuns(store, cfg) {
				break
			}
			continue
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("creating game", "game", menuResult.GameID, "error", err)
			continue
		}

		// Fresh seed for each game unless --seed pins it
		cfg.Seed = gameSeed(flagSeed)

		res, err := tui.Run(game, store, cfg)
		if err != nil {
			logger.Error("running game", "error", err)
		}
		if res.RunID != 0 {
			logger.Debug("run saved", "run", res.RunID)
		}

		// Loop back to menu
	}

	if store != nil {
		store.Close()
	}
}

// showRuns opens the run board and plays a picked replay. It returns false
// when the user quit instead of going back.
func showRuns(store *storage.Store, cfg core.RuntimeConfig) bool {
	res, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		logger.Error("run history failed", "error", err)
		return true
	}

	if res.ReplayID != 0 {
		if err := watchReplay(store, res.ReplayID, cfg); err != nil {
			logger.Error("replay failed", "run", res.ReplayID, "error", err)
		}
		return true
	}

	return res.Back
}
