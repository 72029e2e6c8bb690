package audio

import (
	"sync"
	"time"

	"snake-classic/game"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays short cues for game events. All sounds are synthesised.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system. On failure the manager stays silent.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted silences cues without tearing down the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// OnEvent maps game events to cues. Adding to the mixer does not block.
func (sm *SoundManager) OnEvent(e game.Event) {
	if s := CueFor(e); s != nil {
		sm.play(s)
	}
}

// CueFor returns the sound for an event, nil when the event is silent
func CueFor(e game.Event) beep.Streamer {
	switch e.(type) {
	case game.FoodEaten:
		return NewTone(sampleRate, 880, 50*time.Millisecond)
	case game.LevelUp:
		return beep.Seq(
			NewTone(sampleRate, 660, 80*time.Millisecond),
			NewTone(sampleRate, 880, 80*time.Millisecond),
			NewTone(sampleRate, 1320, 120*time.Millisecond),
		)
	case game.GameOverEvent:
		return beep.Seq(
			NewTone(sampleRate, 330, 150*time.Millisecond),
			NewTone(sampleRate, 220, 300*time.Millisecond),
		)
	case game.BoardFullEvent:
		return beep.Seq(
			NewTone(sampleRate, 523, 100*time.Millisecond),
			NewTone(sampleRate, 659, 100*time.Millisecond),
			NewTone(sampleRate, 784, 100*time.Millisecond),
			NewTone(sampleRate, 1046, 250*time.Millisecond),
		)
	default:
		return nil
	}
}
