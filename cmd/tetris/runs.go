package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Show recorded runs",
	Long: `Display the most recent runs, newest first.

Without a variant, runs of every variant are listed. With --clear, all runs
of the given variant are deleted.

Examples:
  tetris runs
  tetris runs tetris_classic --limit 50
  tetris runs tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all runs of the variant")
}

func runRuns(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown variant %q, run 'tetris list' to see available variants", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsClear {
		if gameID == "" {
			return fmt.Errorf("--clear needs a variant")
		}
		n, err := store.DeleteRuns(gameID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d runs of %s.\n", n, gameID)
		return nil
	}

	runs, err := store.Runs(gameID, flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-5s  %-15s  %-5s  %-6s  %-6s  %-9s  %s\n", "Run", "Variant", "Lines", "Pieces", "Time", "End", "Date")
	fmt.Printf("  %-5s  %-15s  %-5s  %-6s  %-6s  %-9s  %s\n", "---", "-------", "-----", "------", "----", "---", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-15s  %-5d  %-6d  %-6s  %-9s  %s\n",
			r.ID, r.GameID, r.RowsCleared, r.Pieces, tui.FormatRunDuration(r), r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if gameID != "" {
		stats, err := store.GetRunStats(gameID)
		if err == nil {
			fmt.Println()
			fmt.Printf("%d runs, best %d lines, %d lines in total\n", stats.Runs, stats.MostRows, stats.TotalRows)
		}
	}
	return nil
}
