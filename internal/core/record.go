package core

import "time"

// End reasons stored with a run.
const (
	EndGameOver = "game_over"
	EndQuit     = "quit"
)

// CommandRecord is the set of engine commands applied on one tick.
// Ticks without commands are not recorded.
type CommandRecord struct {
	Tick     uint64
	Commands uint8
}

// RunRecord describes one finished game: everything needed to replay it
// deterministically, plus its outcome.
type RunRecord struct {
	ID        int64
	GameID    string
	Seed      int64
	TickRate  int
	CreatedAt time.Time

	// Rules the run was played with
	Cols       int
	Rows       int
	GravityMS  int
	SoftDropMS int
	ClearAll   bool

	// Outcome
	Ticks       uint64
	Pieces      int
	RowsCleared int
	EndReason   string

	Commands []CommandRecord
}
