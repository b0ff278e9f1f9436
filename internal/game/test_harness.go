package game

import "fmt"

// TestSim is a headless simulation harness used by tests. It wraps a World
// built from explicit units rather than Populate, so scenarios can place
// every unit by hand.
type TestSim struct {
	World    *World
	Settings Settings
	Units    []*Unit // in the order the options added them

	placements []placement
}

type placement struct {
	team     TeamID
	pos, vel Vector
	setVel   bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptSettings simOptionKind = iota // field, seed, flags: applied before the world exists
	simOptUnit                          // units: spawned once the world is built
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithField sets the playfield dimensions.
func WithField(w, h float64) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) {
		ts.Settings.Field = Field{Width: w, Height: h}
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) { ts.Settings.Seed = seed }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) { ts.Settings.Verbose = v }}
}

// WithFence toggles the electric fence.
func WithFence(on bool) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) { ts.Settings.ElectricFence = on }}
}

// WithCorruption makes every collision loser defect instead of dying.
func WithCorruption(on bool) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) { ts.Settings.Corruption = on }}
}

// WithCombatPolicy selects how collision winners are drawn.
func WithCombatPolicy(p CombatPolicy) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) { ts.Settings.Combat = p }}
}

// WithAnnounceKills enables the kill feed.
func WithAnnounceKills(on bool) SimOption {
	return SimOption{simOptSettings, func(ts *TestSim) { ts.Settings.AnnounceKills = on }}
}

// WithUnit adds a unit of team t at (x, y) keeping its random spawn velocity.
func WithUnit(t TeamID, x, y float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.placements = append(ts.placements, placement{team: t, pos: Vec(x, y)})
	}}
}

// WithMovingUnit adds a unit of team t at (x, y) with velocity (vx, vy).
func WithMovingUnit(t TeamID, x, y, vx, vy float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.placements = append(ts.placements, placement{team: t, pos: Vec(x, y), vel: Vec(vx, vy), setVel: true})
	}}
}

// NewTestSim constructs a TestSim in two passes: settings first, then
// units. Scenarios default to a 500x500 field, random spawns and no fence.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	s := DefaultSettings()
	s.Field = Field{Width: 500, Height: 500}
	s.UnitsPerTeam = 0
	s.FixedSpawn = false
	s.ElectricFence = false

	ts := &TestSim{Settings: s}
	for _, o := range opts {
		if o.kind == simOptSettings {
			o.fn(ts)
		}
	}
	w, err := NewWorld(ts.Settings)
	if err != nil {
		return nil, err
	}
	ts.World = w

	for _, o := range opts {
		if o.kind == simOptUnit {
			o.fn(ts)
		}
	}
	for _, p := range ts.placements {
		u, err := w.Spawn(p.pos.X, p.pos.Y, p.team)
		if err != nil {
			return nil, fmt.Errorf("spawn %s at %s: %w", p.team, p.pos, err)
		}
		if p.setVel {
			u.vel = p.vel
		}
		ts.Units = append(ts.Units, u)
	}
	return ts, nil
}

// RunTicks advances the simulation n ticks. It returns how many ticks
// actually ran; a halted world stops early.
func (ts *TestSim) RunTicks(n int) int {
	ran := 0
	for i := 0; i < n; i++ {
		if !ts.World.Tick() {
			break
		}
		ran++
	}
	return ran
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if !ts.World.Tick() {
			return -1
		}
		if predicate(ts) {
			return ts.World.CurrentTick()
		}
	}
	return -1
}

// SimLog returns the world's structured log.
func (ts *TestSim) SimLog() *SimLog {
	return ts.World.Log()
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.CurrentTick()
}

// AllByTeam returns the living units currently on team t.
func (ts *TestSim) AllByTeam(t TeamID) []*Unit {
	var out []*Unit
	for _, u := range ts.World.Units() {
		if !u.dead && u.team == t {
			out = append(out, u)
		}
	}
	return out
}
