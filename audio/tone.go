package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// tone is a sine wave with a linear fade out, so cues end without a click
type tone struct {
	freq     float64
	rate     beep.SampleRate
	position int
	samples  int
}

// NewTone creates a finite sine streamer
func NewTone(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return &tone{
		freq:    freq,
		rate:    rate,
		samples: rate.N(d),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.samples {
			return i, i > 0
		}
		phase := 2 * math.Pi * t.freq * float64(t.position) / float64(t.rate)
		envelope := 1 - float64(t.position)/float64(t.samples)
		v := 0.25 * envelope * math.Sin(phase)
		samples[i][0] = v
		samples[i][1] = v
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error {
	return nil
}
