package game

import (
	"fmt"
	"math"
	"math/rand"
)

// World owns the roster, the team table and every global counter. All
// mutation happens on the caller's goroutine; a tick runs to completion
// without yielding.
type World struct {
	settings Settings
	field    Field
	rng      *rand.Rand

	// roster is an arena in spawn order. Dead units stay in place until
	// ClearDead is called between ticks.
	roster []*Unit
	byID   map[UnitID]*Unit
	teams  [teamCount]*Team
	nextID UnitID

	tick    int
	paused  bool
	inTick  bool
	outcome Outcome
	winner  TeamID

	kills         int
	maxKills      int
	highestKiller UnitID

	Trails   *TrailStore
	KillFeed *KillFeed
	log      *SimLog
}

// NewWorld creates an empty world. Call Populate to spawn the configured
// number of units per team.
func NewWorld(s Settings) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		settings: s,
		field:    s.Field,
		rng:      rand.New(rand.NewSource(s.Seed)), // #nosec G404 -- simulation only
		byID:     make(map[UnitID]*Unit),
		teams:    newTeams(s.Field, s.Corruption),
		nextID:   1,
		paused:   s.StartPaused,
		winner:   -1,
		Trails:   NewTrailStore(),
		KillFeed: NewKillFeed(),
		log:      NewSimLog(s.Verbose),
	}
	return w, nil
}

// Populate spawns UnitsPerTeam units for every team at random positions
// (or at the team corners when FixedSpawn is set).
func (w *World) Populate() error {
	for _, t := range AllTeams {
		for i := 0; i < w.settings.UnitsPerTeam; i++ {
			x := w.rng.Float64()*(w.field.Width-spawnMargin) + spawnMargin/2
			y := w.rng.Float64()*(w.field.Height-spawnMargin) + spawnMargin/2
			if _, err := w.Spawn(x, y, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// Spawn creates a unit at (x, y) on team t and appends it to the roster.
// With FixedSpawn the team's corner overrides the requested coordinates.
func (w *World) Spawn(x, y float64, t TeamID) (*Unit, error) {
	if w.inTick {
		return nil, ErrMidTick
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTeam, t)
	}
	pos := Vec(x, y)
	if !pos.IsFinite() {
		return nil, fmt.Errorf("%w: %v,%v", ErrInvalidPosition, x, y)
	}
	team := w.teams[t]
	if w.settings.FixedSpawn {
		pos = team.Spawn
	}

	u := &Unit{
		id:         w.nextID,
		team:       t,
		pos:        pos,
		vel:        Vec(w.rng.Float64()*2-1, w.rng.Float64()*2-1),
		maxSpeed:   team.BaseSpeed,
		combatTick: -1,
	}
	u.steering = newSteering(u, w.field, w.rng)
	w.nextID++

	w.roster = append(w.roster, u)
	w.byID[u.id] = u
	team.Members = append(team.Members, u)
	team.Spawned++
	team.Remaining++
	w.Trails.Record(u.id, u.pos)
	w.log.AddVerbose(w.tick, u.Label(), t.String(), "roster", "spawn", pos.String(), 0)
	return u, nil
}

// Tick advances the world by one step. It returns false without doing
// anything when the world is paused or the game has ended.
func (w *World) Tick() bool {
	if w.paused || w.outcome != OutcomeRunning {
		return false
	}
	w.inTick = true
	defer func() { w.inTick = false }()

	w.tick++
	if yellow := w.teams[TeamYellow]; yellow.rest.advance() {
		phase := "moving"
		if yellow.rest.resting {
			phase = "resting"
		}
		w.log.AddVerbose(w.tick, "--", TeamYellow.String(), "team", "phase", phase, 0)
	}

	// Index loop: the roster never grows during a tick, but later units
	// must see deaths and defections made by earlier ones.
	for i := 0; i < len(w.roster); i++ {
		w.roster[i].Update(w)
	}
	w.checkWin()
	return true
}

// checkWin halts the game when one team is left, or when none are left
// once the start-up grace period has passed.
func (w *World) checkWin() {
	var alive [teamCount]bool
	remaining := 0
	last := TeamID(-1)
	for _, u := range w.roster {
		if u.dead || alive[u.team] {
			continue
		}
		alive[u.team] = true
		remaining++
		last = u.team
	}

	switch {
	case remaining == 1:
		w.outcome = OutcomeVictory
		w.winner = last
		w.paused = true
		w.log.Add(w.tick, "--", last.String(), "game", "over",
			fmt.Sprintf("game over, %s team wins", last), 0)
	case remaining == 0 && w.tick > extinctionGrace:
		w.outcome = OutcomeExtinction
		w.paused = true
		w.log.Add(w.tick, "--", "--", "game", "extinction", "something went wrong, everyone is dead", 0)
	}
}

// ensureLeader returns team t's leader, electing a new one uniformly at
// random among living members when there is none, it died, or it defected.
// A new leader is permanently slowed to keep the pack together.
func (w *World) ensureLeader(t TeamID) *Unit {
	team := w.teams[t]
	if l := w.byID[team.Leader]; l != nil && !l.dead && l.team == t {
		return l
	}

	var choices []*Unit
	for _, u := range w.roster {
		if !u.dead && u.team == t {
			choices = append(choices, u)
		}
	}
	if len(choices) == 0 {
		team.Leader = 0
		return nil
	}
	l := choices[w.rng.Intn(len(choices))]
	team.Leader = l.id
	l.maxSpeed = math.Max(0, l.maxSpeed-leaderSpeedCost)
	l.vel = l.vel.Truncate(l.maxSpeed)
	w.log.Add(w.tick, l.Label(), t.String(), "team", "leader", t.String()+" chose a new leader", float64(l.id))
	return l
}

// ClearDead removes dead units from the roster, the team member lists and
// the trail store. It returns the number removed.
func (w *World) ClearDead() (int, error) {
	if w.inTick {
		return 0, ErrMidTick
	}
	removed := 0
	kept := w.roster[:0]
	for _, u := range w.roster {
		if !u.dead {
			kept = append(kept, u)
			continue
		}
		delete(w.byID, u.id)
		w.Trails.Remove(u.id)
		removed++
	}
	for i := len(kept); i < len(w.roster); i++ {
		w.roster[i] = nil
	}
	w.roster = kept
	for _, team := range w.teams {
		members := team.Members[:0]
		for _, u := range team.Members {
			if !u.dead {
				members = append(members, u)
			}
		}
		team.Members = members
	}
	w.log.Add(w.tick, "--", "--", "roster", "clear_dead", fmt.Sprintf("%d graves cleared", removed), float64(removed))
	return removed, nil
}

// Paused reports whether ticks are currently suppressed.
func (w *World) Paused() bool { return w.paused }

// SetPaused pauses or resumes the loop. A finished game stays halted.
func (w *World) SetPaused(p bool) {
	if w.outcome != OutcomeRunning {
		return
	}
	w.paused = p
}

// TogglePause flips the paused flag unless the game is over.
func (w *World) TogglePause() {
	w.SetPaused(!w.paused)
}

func (w *World) Settings() Settings { return w.settings }
func (w *World) Field() Field { return w.field }
func (w *World) CurrentTick() int { return w.tick }
func (w *World) Outcome() Outcome { return w.outcome }
func (w *World) GameOver() bool { return w.outcome == OutcomeVictory }
func (w *World) Halted() bool { return w.outcome != OutcomeRunning }
func (w *World) Kills() int { return w.kills }
func (w *World) MaxKills() int { return w.maxKills }
func (w *World) HighestKiller() UnitID { return w.highestKiller }
func (w *World) Log() *SimLog { return w.log }
func (w *World) Units() []*Unit { return w.roster }
func (w *World) Unit(id UnitID) *Unit { return w.byID[id] }
func (w *World) Team(t TeamID) *Team { return w.teams[t] }

// Winner returns the surviving team once the game is over.
func (w *World) Winner() (TeamID, bool) {
	return w.winner, w.outcome == OutcomeVictory
}

// Population returns the sum of every team's remaining count.
func (w *World) Population() int {
	n := 0
	for _, t := range w.teams {
		n += t.Remaining
	}
	return n
}

// LivingCount counts living units currently on team t by scanning the roster.
func (w *World) LivingCount(t TeamID) int {
	n := 0
	for _, u := range w.roster {
		if !u.dead && u.team == t {
			n++
		}
	}
	return n
}
