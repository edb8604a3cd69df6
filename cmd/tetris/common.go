package main

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// gameSeed returns the --seed value when one was given, otherwise a fresh
// time-based seed.
func gameSeed(fixed int64) int64 {
	if fixed != 0 {
		return fixed
	}
	return time.Now().UnixNano()
}

// openStoreOptional opens the run database. Games still work without it,
// so failures are only logged.
func openStoreOptional() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database, runs will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
