package stats

import (
	"context"
	"sync"
	"time"

	"snake-classic/game"

	"github.com/rs/zerolog/log"
)

// Sink stores finished games somewhere durable
type Sink interface {
	SaveGame(ctx context.Context, r Record) error
}

// Recorder listens to the game loop and adds every finished game to the
// history. Persisting runs in the background so the loop never waits on disk.
type Recorder struct {
	stats *GameStats
	sink  Sink
	now   func() time.Time

	started time.Time
	wg      sync.WaitGroup
}

// NewRecorder creates a recorder. sink may be nil.
func NewRecorder(stats *GameStats, sink Sink) *Recorder {
	return &Recorder{
		stats: stats,
		sink:  sink,
		now:   time.Now,
	}
}

func (r *Recorder) OnEvent(e game.Event) {
	switch ev := e.(type) {
	case game.PhaseChanged:
		if ev.To == game.Running && (ev.From == game.Idle || ev.From.Ended()) {
			r.started = r.now()
		}
	case game.GameOverEvent:
		r.record(ev.GameID, ev.FinalScore, ev.Level, game.GameOver)
	case game.BoardFullEvent:
		r.record(ev.GameID, ev.FinalScore, ev.Level, game.BoardFull)
	}
}

func (r *Recorder) record(id string, score, level int, phase game.Phase) {
	rec := Record{
		ID:        id,
		StartTime: r.started,
		EndTime:   r.now(),
		Score:     score,
		Level:     level,
		Outcome:   phase.String(),
	}
	if rec.StartTime.IsZero() {
		rec.StartTime = rec.EndTime
	}
	r.stats.AddGame(rec)

	if r.sink == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.sink.SaveGame(ctx, rec); err != nil {
			log.Error().Err(err).Str("game", rec.ID).Msg("could not save game")
		}
	}()
}

// Wait blocks until queued saves are done
func (r *Recorder) Wait() {
	r.wg.Wait()
}
