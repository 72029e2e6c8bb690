package manager

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ScoreStore persists the best score across runs
type ScoreStore interface {
	Get(ctx context.Context) (int, error)
	Set(ctx context.Context, score int) error
}

// StateManager keeps the high score and writes it back to the store.
// Writes happen on a background goroutine so a slow store never delays a tick;
// only the most recent pending value is written.
type StateManager struct {
	store     ScoreStore
	highScore int
	gameBest  int // high score when the current game started

	pending chan int
	wg      sync.WaitGroup
	once    sync.Once
}

// NewStateManager reads the stored high score once. A failing store is logged
// and treated as empty.
func NewStateManager(ctx context.Context, store ScoreStore) *StateManager {
	sm := &StateManager{
		store:   store,
		pending: make(chan int, 1),
	}

	if store != nil {
		score, err := store.Get(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("could not load high score")
		} else {
			sm.highScore = score
		}
	}
	sm.gameBest = sm.highScore

	sm.wg.Add(1)
	go sm.writer()

	return sm
}

func (sm *StateManager) writer() {
	defer sm.wg.Done()
	for score := range sm.pending {
		if sm.store == nil {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := sm.store.Set(ctx, score); err != nil {
			log.Error().Err(err).Int("score", score).Msg("could not save high score")
		}
		cancel()
	}
}

// BeginGame remembers the best score as it stood before this game
func (sm *StateManager) BeginGame() {
	sm.gameBest = sm.highScore
}

// UpdateScore raises the high score when score beats it and queues a write.
// Returns true when the high score moved.
func (sm *StateManager) UpdateScore(score int) bool {
	if score <= sm.highScore {
		return false
	}
	sm.highScore = score

	select {
	case sm.pending <- score:
	default:
		// A write is already queued; replace it with the newer value
		select {
		case <-sm.pending:
		default:
		}
		select {
		case sm.pending <- score:
		default:
		}
	}
	return true
}

// IsNewHighScore reports whether score beats the best known when the game began
func (sm *StateManager) IsNewHighScore(score int) bool {
	return score > sm.gameBest
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// Close flushes the last queued write
func (sm *StateManager) Close() {
	sm.once.Do(func() {
		close(sm.pending)
	})
	sm.wg.Wait()
}
