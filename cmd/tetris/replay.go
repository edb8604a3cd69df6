package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Verify or watch a recorded run",
	Long: `Re-run a recorded game from its seed and commands.

By default the replay runs headless, checks that it reproduces the recorded
outcome and prints the final well. With --watch it plays back in the
terminal at the recorded tick rate (P pauses, Q quits).

Examples:
  tetris replay 12
  tetris replay 12 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the run back in the terminal")
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagWatch {
		return watchReplay(store, id, runtimeConfig())
	}

	rec, err := store.RunByID(id)
	if err != nil {
		return err
	}

	snap, err := tetris.Replay(rec)
	if err != nil {
		return err
	}

	fmt.Printf("Run #%d (%s, seed %d) reproduced: %d ticks, %d pieces, %d lines, %s\n\n",
		rec.ID, rec.GameID, rec.Seed, snap.Tick, snap.Pieces, snap.RowsCleared, rec.EndReason)
	fmt.Println(snap.String())
	return nil
}

// watchReplay plays a stored run back in the terminal. Replays are never
// saved as new runs.
func watchReplay(store *storage.Store, id int64, cfg core.RuntimeConfig) error {
	rec, err := store.RunByID(id)
	if err != nil {
		return err
	}
	logger.Debug("replaying run", "run", id, "ticks", rec.Ticks, "commands", len(rec.Commands))

	// Play back at the recorded speed
	cfg.TickRate = rec.TickRate

	_, err = tui.Run(tetris.NewReplayGame(rec), nil, cfg)
	return err
}
