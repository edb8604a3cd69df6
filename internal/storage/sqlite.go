// Package storage provides SQLite-based persistence for finished runs and
// the commands needed to replay them.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunStats contains aggregated statistics for a game.
type RunStats struct {
	GameID      string
	Runs        int
	MostRows    int // Most rows cleared in a single run
	TotalRows   int64
	TotalPieces int64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			cols INTEGER NOT NULL,
			rows INTEGER NOT NULL,
			gravity_ms INTEGER NOT NULL,
			soft_drop_ms INTEGER NOT NULL,
			clear_all INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			rows_cleared INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id);

		CREATE TABLE IF NOT EXISTS run_commands (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			command INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run with its commands in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(rec core.RunRecord) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	result, err := tx.Exec(
		`INSERT INTO runs (game_id, seed, tick_rate, cols, rows, gravity_ms, soft_drop_ms,
		                   clear_all, ticks, pieces, rows_cleared, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, rec.TickRate, rec.Cols, rec.Rows, rec.GravityMS, rec.SoftDropMS,
		rec.ClearAll, int64(rec.Ticks), rec.Pieces, rec.RowsCleared, rec.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	if len(rec.Commands) > 0 {
		stmt, err := tx.Prepare("INSERT INTO run_commands (run_id, tick, command) VALUES (?, ?, ?)")
		if err != nil {
			return 0, fmt.Errorf("storage: cannot prepare command insert: %w", err)
		}
		defer stmt.Close()

		for _, c := range rec.Commands {
			if _, err := stmt.Exec(id, int64(c.Tick), c.Commands); err != nil {
				return 0, fmt.Errorf("storage: cannot save command at tick %d: %w", c.Tick, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, game_id, seed, tick_rate, cols, rows, gravity_ms, soft_drop_ms,
	clear_all, ticks, pieces, rows_cleared, end_reason, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (core.RunRecord, error) {
	var rec core.RunRecord
	var ticks int64
	var createdAt any
	err := row.Scan(&rec.ID, &rec.GameID, &rec.Seed, &rec.TickRate, &rec.Cols, &rec.Rows,
		&rec.GravityMS, &rec.SoftDropMS, &rec.ClearAll, &ticks, &rec.Pieces, &rec.RowsCleared,
		&rec.EndReason, &createdAt)
	if err != nil {
		return rec, err
	}
	rec.Ticks = uint64(ticks)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// Runs retrieves the most recent runs, newest first, without their commands.
// An empty gameID returns runs of every game.
func (s *Store) Runs(gameID string, limit int) ([]core.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []core.RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves one run with all of its commands, ordered by tick.
// Returns ErrRunNotFound if the ID does not exist.
func (s *Store) RunByID(id int64) (core.RunRecord, error) {
	rec, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot get run %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT tick, command FROM run_commands WHERE run_id = ? ORDER BY tick`,
		id,
	)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query commands: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tick int64
		var c core.CommandRecord
		if err := rows.Scan(&tick, &c.Commands); err != nil {
			return rec, fmt.Errorf("storage: cannot scan command: %w", err)
		}
		c.Tick = uint64(tick)
		rec.Commands = append(rec.Commands, c)
	}

	if err := rows.Err(); err != nil {
		return rec, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rec, nil
}

// DeleteRuns deletes all runs of the given game with their commands.
// Returns the number of runs removed.
func (s *Store) DeleteRuns(gameID string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec(
		`DELETE FROM run_commands WHERE run_id IN (SELECT id FROM runs WHERE game_id = ?)`,
		gameID,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot delete commands: %w", err)
	}

	result, err := tx.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot delete runs: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count deleted runs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return n, nil
}

// GetRunStats retrieves aggregated statistics for a specific game.
func (s *Store) GetRunStats(gameID string) (*RunStats, error) {
	stats := &RunStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(rows_cleared), 0), COALESCE(SUM(rows_cleared), 0),
		        COALESCE(SUM(pieces), 0), MAX(created_at)
		 FROM runs WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Runs, &stats.MostRows, &stats.TotalRows, &stats.TotalPieces, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime converts a DATETIME column value, which the driver may return
// as time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
