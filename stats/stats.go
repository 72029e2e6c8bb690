package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

const MaxRecords = 200 // Oldest games are dropped past this

// DefaultFile is where the session history is kept when no database is used
var DefaultFile = filepath.Join("data", "stats.json")

// Record is one finished game
type Record struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Outcome   string    `json:"outcome"` // "game_over" or "board_full"
}

// Duration of the game in seconds
func (r Record) Duration() float64 {
	return r.EndTime.Sub(r.StartTime).Seconds()
}

// GameStats holds the finished games and derives averages from them
type GameStats struct {
	Games []Record
	mutex sync.RWMutex
}

func NewGameStats() *GameStats {
	return &GameStats{
		Games: make([]Record, 0),
	}
}

// AddGame appends a finished game
func (s *GameStats) AddGame(r Record) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.Games = append(s.Games, r)
	if len(s.Games) > MaxRecords {
		s.Games = s.Games[len(s.Games)-MaxRecords:]
	}
}

// Load replaces the history, oldest first
func (s *GameStats) Load(records []Record) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	games := make([]Record, len(records))
	copy(games, records)
	sort.Slice(games, func(i, j int) bool {
		return games[i].EndTime.Before(games[j].EndTime)
	})
	if len(games) > MaxRecords {
		games = games[len(games)-MaxRecords:]
	}
	s.Games = games
}

// GetStats returns a copy of the history
func (s *GameStats) GetStats() []Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]Record, len(s.Games))
	copy(out, s.Games)
	return out
}

func (s *GameStats) GetGamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.Games)
}

func (s *GameStats) GetAverageScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.Games) == 0 {
		return 0
	}
	total := 0
	for _, g := range s.Games {
		total += g.Score
	}
	return float64(total) / float64(len(s.Games))
}

func (s *GameStats) GetMedianScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.Games) == 0 {
		return 0
	}
	scores := make([]int, len(s.Games))
	for i, g := range s.Games {
		scores[i] = g.Score
	}
	sort.Ints(scores)

	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

func (s *GameStats) GetMaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	maxScore := 0
	for _, g := range s.Games {
		if g.Score > maxScore {
			maxScore = g.Score
		}
	}
	return maxScore
}

// GetAverageDuration returns the mean game length in seconds
func (s *GameStats) GetAverageDuration() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.Games) == 0 {
		return 0
	}
	var total float64
	for _, g := range s.Games {
		total += g.Duration()
	}
	return total / float64(len(s.Games))
}

// Summary is what the HUD shows
type Summary struct {
	GamesPlayed  int
	AverageScore float64
	MedianScore  float64
	MaxScore     int
}

func (s *GameStats) Summary() Summary {
	return Summary{
		GamesPlayed:  s.GetGamesPlayed(),
		AverageScore: s.GetAverageScore(),
		MedianScore:  s.GetMedianScore(),
		MaxScore:     s.GetMaxScore(),
	}
}

// SaveToFile writes the history as JSON
func (s *GameStats) SaveToFile(path string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	jsonData, err := json.MarshalIndent(s.Games, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats data: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}

// LoadFromFile reads a history written by SaveToFile. A missing file is an
// empty history.
func (s *GameStats) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to decode stats file: %w", err)
	}
	s.Load(records)
	return nil
}
