package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// HeldInput is set by hosts that report a held key on every tick.
	// Terminal hosts only see presses and leave it false.
	HeldInput bool
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	GameOver    bool   // Whether the game has ended
	Paused      bool   // Whether the game is paused
	Ticks       uint64 // Simulation ticks since the last reset
	Pieces      int    // Pieces spawned
	RowsCleared int    // Rows removed by line clears
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State   GameState
	Froze   bool  // A piece settled this tick
	Cleared []int // Rows removed this tick
}
