// Package store persists the high score.
//
// Backends:
//   - file: a small JSON document (default)
//   - sqlite: a key/value table plus the history of finished games
//   - memory: nothing survives the process, used in tests and with -store memory
package store

import (
	"context"
	"fmt"
)

// HighScoreKey names the persisted value
const HighScoreKey = "snakeHighScore"

// ScoreStore reads and writes a single integer. An absent value reads as 0.
type ScoreStore interface {
	Get(ctx context.Context) (int, error)
	Set(ctx context.Context, score int) error
}

// Open builds the store selected by driver
func Open(driver, path string) (ScoreStore, error) {
	switch driver {
	case "file", "":
		return NewFileStore(path), nil
	case "sqlite":
		return OpenSQLite(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
