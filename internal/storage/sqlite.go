// Package storage provides SQLite-based persistence for recorded rounds.
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

	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// ErrNotFound is returned when a round ID does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection for round persistence.
type Store struct {
	db *sql.DB
}

// RoundEntry is one recorded round. Journal is only populated by Round.
type RoundEntry struct {
	ID        int64
	GameID    string
	Player    string
	Seed      int64
	Score     int
	Lines     int
	Pieces    int
	Ticks     uint64
	TickRate  int
	CreatedAt time.Time
	Journal   replay.Journal
}

// Duration returns the simulated length of the round.
func (e RoundEntry) Duration() time.Duration {
	if e.TickRate <= 0 {
		return 0
	}
	return time.Duration(e.Ticks) * time.Second / time.Duration(e.TickRate)
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
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			pieces INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			journal BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id, id DESC);
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

// SaveRound stores a finished round and its journal.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(player string, j replay.Journal) (int64, error) {
	data, err := replay.Encode(j)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode journal: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO rounds (game_id, player, seed, score, lines, pieces, ticks, tick_rate, journal)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.Game, player, j.Seed, j.Result.Score, j.Result.Lines, j.Result.Pieces, int64(j.Result.Ticks), j.TickRate, data,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Round loads a single round including its decoded journal.
func (s *Store) Round(id int64) (RoundEntry, error) {
	var e RoundEntry
	var ticks int64
	var createdAt any
	var data []byte

	err := s.db.QueryRow(
		`SELECT id, game_id, player, seed, score, lines, pieces, ticks, tick_rate, created_at, journal
		 FROM rounds
		 WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.GameID, &e.Player, &e.Seed, &e.Score, &e.Lines, &e.Pieces, &ticks, &e.TickRate, &createdAt, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return RoundEntry{}, fmt.Errorf("%w: round %d", ErrNotFound, id)
	}
	if err != nil {
		return RoundEntry{}, fmt.Errorf("storage: cannot query round: %w", err)
	}

	e.Ticks = uint64(ticks)
	e.CreatedAt = parseTime(createdAt)
	e.Journal, err = replay.Decode(data)
	if err != nil {
		return RoundEntry{}, fmt.Errorf("storage: round %d: %w", id, err)
	}
	return e, nil
}

// ListRounds returns the most recently recorded rounds for a game, newest
// first, without their journals. limit <= 0 means 50.
func (s *Store) ListRounds(gameID string, limit int) ([]RoundEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, seed, score, lines, pieces, ticks, tick_rate, created_at
		 FROM rounds
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Seed, &e.Score, &e.Lines, &e.Pieces, &ticks, &e.TickRate, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteRound removes a round.
func (s *Store) DeleteRound(id int64) error {
	res, err := s.db.Exec("DELETE FROM rounds WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete round: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: round %d", ErrNotFound, id)
	}
	return nil
}

// CountRounds returns how many rounds are stored for a game.
func (s *Store) CountRounds(gameID string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rounds WHERE game_id = ?", gameID).Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count rounds: %w", err)
	}
	return n, nil
}

// parseTime handles both driver representations of DATETIME columns.
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
