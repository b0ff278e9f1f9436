package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps how many cues overlap; a mass brawl would otherwise clip.
const maxVoices = 8

// SoundManager mixes kill cues onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a manager at the given volume (0..1).
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer.
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

// PlayKill queues the cue for a kill by team t. It is a no-op until
// Initialize succeeds.
func (sm *SoundManager) PlayKill(t game.TeamID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.enqueue(KillCue(t, sm.volume, sampleRate))
	speaker.Unlock()
}

func (sm *SoundManager) enqueue(s beep.Streamer) {
	if sm.mixer.Len() >= maxVoices {
		return
	}
	sm.mixer.Add(s)
}

// Voices reports how many cues are still playing.
func (sm *SoundManager) Voices() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.mixer.Len()
}
