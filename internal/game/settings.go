package game

import (
	"errors"
	"fmt"
)

// Simulation constants. Distances are in pixels, times in ticks.
const (
	collisionDistance = 10.0
	spawnMargin       = 40.0
	recordInterval    = 20 // ticks between trail samples
	extinctionGrace   = 10 // ticks before a zero-team state counts as a halt

	// TicksPerSecond is the nominal rate the viewers drive the loop at.
	TicksPerSecond = 60
)

var (
	// ErrInvalidPosition is returned when a spawn coordinate is NaN or infinite.
	ErrInvalidPosition = errors.New("game: position is not finite")
	// ErrUnknownTeam is returned for a TeamID outside the four teams.
	ErrUnknownTeam = errors.New("game: unknown team")
	// ErrMidTick is returned when a between-tick operation is requested while a tick runs.
	ErrMidTick = errors.New("game: operation not allowed during a tick")
	// ErrInvalidSettings is returned by NewWorld for unusable settings.
	ErrInvalidSettings = errors.New("game: invalid settings")
)

// CombatPolicy selects how the winner of a collision is drawn.
type CombatPolicy int

const (
	CombatUniform            CombatPolicy = iota // 50/50
	CombatPopulationWeighted                     // smaller teams favoured
)

func (p CombatPolicy) String() string {
	switch p {
	case CombatUniform:
		return "uniform"
	case CombatPopulationWeighted:
		return "population"
	default:
		return "unknown"
	}
}

// Field is the playing-field rectangle, anchored at the origin.
type Field struct {
	Width, Height float64
}

// Contains reports whether p lies strictly inside the field.
func (f Field) Contains(p Vector) bool {
	return p.X > 0 && p.X < f.Width && p.Y > 0 && p.Y < f.Height
}

// Center returns the middle of the field.
func (f Field) Center() Vector {
	return Vec(f.Width/2, f.Height/2)
}

// Settings is the configuration the core consumes. It is produced by the
// config package; the core does not read files.
type Settings struct {
	Field         Field
	UnitsPerTeam  int
	FixedSpawn    bool // spawn every unit at its team's corner
	ElectricFence bool // kill units that leave the field
	Combat        CombatPolicy
	Corruption    bool // losers defect instead of dying
	AnnounceKills bool
	StartPaused   bool
	Seed          int64
	Verbose       bool // record per-tick avoidance events in the SimLog
}

// DefaultSettings mirrors the stock configuration: 300 units, fixed
// corner spawns, electric fence on.
func DefaultSettings() Settings {
	return Settings{
		Field:         Field{Width: 1200, Height: 700},
		UnitsPerTeam:  75,
		FixedSpawn:    true,
		ElectricFence: true,
		Combat:        CombatUniform,
		Seed:          1,
	}
}

// Validate reports settings the world cannot run with.
func (s Settings) Validate() error {
	if s.Field.Width <= 2*spawnMargin || s.Field.Height <= 2*spawnMargin {
		return fmt.Errorf("%w: field %.0fx%.0f must exceed %.0f on each side",
			ErrInvalidSettings, s.Field.Width, s.Field.Height, 2*spawnMargin)
	}
	if s.UnitsPerTeam < 0 {
		return fmt.Errorf("%w: units per team %d", ErrInvalidSettings, s.UnitsPerTeam)
	}
	if s.Combat != CombatUniform && s.Combat != CombatPopulationWeighted {
		return fmt.Errorf("%w: combat policy %d", ErrInvalidSettings, s.Combat)
	}
	return nil
}
