package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

// drain streams s to completion and returns every left-channel sample.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			out = append(out, buf[j][0])
		}
		if !ok {
			return out
		}
	}
	t.Fatal("stream never ended")
	return nil
}

func TestTone_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(t, newTone(440, 50*time.Millisecond, rate))
	if len(samples) != rate.N(50*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", rate.N(50*time.Millisecond), len(samples))
	}
	for i, v := range samples {
		if v != 1 && v != -1 {
			t.Fatalf("sample %d should be ±1, got %f", i, v)
		}
	}
}

func TestEnvelope_FadesInAndOut(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 100 * time.Millisecond
	samples := drain(t, newEnvelope(newTone(200, d, rate), d, 10*time.Millisecond, 20*time.Millisecond, rate))
	if samples[0] != 0 {
		t.Fatalf("first sample should be silent, got %f", samples[0])
	}
	if last := math.Abs(samples[len(samples)-1]); last > 0.05 {
		t.Fatalf("last sample should be near silent, got %f", last)
	}
	peak := 0.0
	for _, v := range samples {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak != 1 {
		t.Fatalf("sustain should reach full volume, got %f", peak)
	}
}

func TestKillCue_VolumeAndLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	loud := drain(t, KillCue(game.TeamRed, 1, rate))
	if want := 2 * rate.N(cueDuration); len(loud) != want {
		t.Fatalf("expected %d samples, got %d", want, len(loud))
	}
	quiet := drain(t, KillCue(game.TeamRed, 0.25, rate))
	for i := range loud {
		if math.Abs(quiet[i]-loud[i]*0.25) > 1e-9 {
			t.Fatalf("sample %d: quarter volume %f, full %f", i, quiet[i], loud[i])
		}
	}
	for _, v := range drain(t, KillCue(game.TeamBlue, 0, rate)) {
		if v != 0 {
			t.Fatal("zero volume must be silent")
		}
	}
}

func TestSoundManager_UninitializedIsSilent(t *testing.T) {
	sm := NewSoundManager(0.5)
	sm.PlayKill(game.TeamGreen)
	if sm.Voices() != 0 {
		t.Fatal("cues should not queue before Initialize")
	}
	sm.Cleanup()
}

func TestSoundManager_VoiceCap(t *testing.T) {
	sm := NewSoundManager(0.5)
	for i := 0; i < maxVoices+3; i++ {
		sm.enqueue(KillCue(game.TeamRed, 0.5, sampleRate))
	}
	if sm.Voices() != maxVoices {
		t.Fatalf("expected %d voices, got %d", maxVoices, sm.Voices())
	}
}
