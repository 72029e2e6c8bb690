package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"snake-classic/stats"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DefaultSQLitePath is the database used by -store sqlite
var DefaultSQLitePath = filepath.Join("data", "snake.db")

var migrations = []struct {
	name string
	sql  string
}{
	{"001_kv", `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);`},
	{"002_games", `CREATE TABLE IF NOT EXISTS games (
		id         TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		ended_at   TIMESTAMP NOT NULL,
		score      INTEGER NOT NULL,
		level      INTEGER NOT NULL,
		outcome    TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS games_score ON games(score DESC);`},
}

// SQLiteStore keeps the high score in a key/value table and records every
// finished game.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and applies
// migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = DefaultSQLitePath
	}

	// Ensure directory exists for ./data/snake.db, etc.
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; one connection also keeps :memory: databases shared
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	for _, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, m.name).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", m.name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", m.name, err)
		}
		log.Debug().Str("migration", m.name).Msg("applied")
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, HighScoreKey).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	return score, nil
}

func (s *SQLiteStore) Set(ctx context.Context, score int) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		HighScoreKey, score,
	)
	if err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

// SaveGame inserts a finished game. Saving the same game twice is a no-op.
func (s *SQLiteStore) SaveGame(ctx context.Context, r stats.Record) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, started_at, ended_at, score, level, outcome)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartTime.UTC(), r.EndTime.UTC(), r.Score, r.Level, r.Outcome,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", r.ID, err)
	}
	return nil
}

// LoadGames returns up to limit games, newest first. Default limit is 100.
func (s *SQLiteStore) LoadGames(ctx context.Context, limit int) ([]stats.Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, ended_at, score, level, outcome
        FROM games
        ORDER BY ended_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]stats.Record, 0, limit)
	for rows.Next() {
		var r stats.Record
		var started, ended time.Time
		if err := rows.Scan(&r.ID, &started, &ended, &r.Score, &r.Level, &r.Outcome); err != nil {
			return nil, err
		}
		r.StartTime = started
		r.EndTime = ended
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
