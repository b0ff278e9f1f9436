// Package audio synthesises the kill cue played by the viewers.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

const (
	cueDuration = 90 * time.Millisecond
	cueAttack   = 5 * time.Millisecond
	cueRelease  = 60 * time.Millisecond
)

// teamPitch is the fundamental of each team's cue, in Hz.
var teamPitch = map[game.TeamID]float64{
	game.TeamRed:    220,
	game.TeamBlue:   330,
	game.TeamGreen:  440,
	game.TeamYellow: 554.37,
}

// tone generates a square wave of fixed length.
type tone struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

func newTone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, duration: rate.N(duration), rate: rate}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		val := -1.0
		if o.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.position >= releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; 0 is silent since Log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// KillCue builds the short two-note blip announcing a kill by team t.
func KillCue(t game.TeamID, volume float64, rate beep.SampleRate) beep.Streamer {
	pitch, ok := teamPitch[t]
	if !ok {
		pitch = 440
	}
	first := newEnvelope(newTone(pitch, cueDuration, rate), cueDuration, cueAttack, cueRelease, rate)
	second := newEnvelope(newTone(pitch*1.5, cueDuration, rate), cueDuration, cueAttack, cueRelease, rate)
	return newVolume(beep.Seq(first, second), volume)
}
