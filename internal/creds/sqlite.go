// internal/creds/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout,
//     foreign keys).
//   - Bootstrapping the players table if missing.
//   - Load/Save of player records; the guess histogram is stored as a JSON
//     column since it is only ever read back whole.

package creds

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
    username        TEXT PRIMARY KEY,
    alias           TEXT NOT NULL DEFAULT '',
    password_hash   TEXT NOT NULL,
    last_play_date  INTEGER NOT NULL DEFAULT 0,
    score           INTEGER NOT NULL DEFAULT 0,
    streak          INTEGER NOT NULL DEFAULT 0,
    max_streak      INTEGER NOT NULL DEFAULT 0,
    wordles_solved  INTEGER NOT NULL DEFAULT 0,
    wordles_lost    INTEGER NOT NULL DEFAULT 0,
    guess_histogram TEXT NOT NULL DEFAULT '[]'
);`

// SQLiteStore is the durable Store implementation.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (and creates if missing) the database file and ensures
// the schema exists.
func OpenSQLite(dsn string, logger zerolog.Logger) (*SQLiteStore, error) {
	// Ensure directory exists for ./data/app.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create players table: %w", err)
	}
	logger.Info().Str("dsn", dsn).Msg("credential store opened")
	return &SQLiteStore{db: db, log: logger}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load retrieves the record for username, or ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, username string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT username, alias, password_hash, last_play_date, score, streak,
               max_streak, wordles_solved, wordles_lost, guess_histogram
        FROM players WHERE lower(username)=lower(?)`, username)

	var rec Record
	var histJSON string
	err := row.Scan(&rec.Username, &rec.Alias, &rec.PasswordHash, &rec.LastPlayDate,
		&rec.Score, &rec.Streak, &rec.MaxStreak, &rec.WordlesSolved, &rec.WordlesLost,
		&histJSON)
	if err == sql.ErrNoRows {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(histJSON), &rec.GuessHistogram); err != nil {
		s.log.Warn().Err(err).Str("username", rec.Username).Msg("corrupt guess histogram, resetting")
		rec.GuessHistogram = nil
	}
	return rec, nil
}

// Save inserts or updates the record keyed by username. The password hash is
// only written when the record carries one, so stat updates cannot wipe it.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	hist, err := json.Marshal(rec.GuessHistogram)
	if err != nil {
		return fmt.Errorf("marshal histogram: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO players (username, alias, password_hash, last_play_date, score,
                             streak, max_streak, wordles_solved, wordles_lost, guess_histogram)
        VALUES (?,?,?,?,?,?,?,?,?,?)
        ON CONFLICT(username) DO UPDATE SET
            alias=excluded.alias,
            password_hash=CASE WHEN excluded.password_hash='' THEN players.password_hash
                               ELSE excluded.password_hash END,
            last_play_date=excluded.last_play_date,
            score=excluded.score,
            streak=excluded.streak,
            max_streak=excluded.max_streak,
            wordles_solved=excluded.wordles_solved,
            wordles_lost=excluded.wordles_lost,
            guess_histogram=excluded.guess_histogram`,
		rec.Username, rec.Alias, rec.PasswordHash, rec.LastPlayDate, rec.Score,
		rec.Streak, rec.MaxStreak, rec.WordlesSolved, rec.WordlesLost, string(hist))
	return err
}

// CreateUser hashes the password and inserts a fresh record. Fails if the
// username is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, alias, password string) error {
	var exists int
	_ = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM players WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if exists == 1 {
		return ErrUsernameTaken
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO players (username, alias, password_hash) VALUES (?,?,?)`,
		username, alias, hash)
	return err
}
