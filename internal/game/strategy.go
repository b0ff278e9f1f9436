package game

import "math"

// IntentKind is what a strategy wants a unit to do this tick.
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentWander
	IntentSeek
	IntentFlee
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "none"
	case IntentWander:
		return "wander"
	case IntentSeek:
		return "seek"
	case IntentFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Intent is a strategy's decision for one unit.
type Intent struct {
	Kind          IntentKind
	Target        Vector
	SlowingRadius float64 // seek only
}

func (in Intent) apply(s *Steering) {
	switch in.Kind {
	case IntentWander:
		s.Wander()
	case IntentSeek:
		s.Seek(in.Target, in.SlowingRadius)
	case IntentFlee:
		s.Flee(in.Target)
	}
}

// Strategy decides a unit's intent from the shared roster. Implementations
// only mutate their own team's state (leader, timers).
type Strategy interface {
	Decide(w *World, u *Unit) Intent
}

// Strategy tuning.
const (
	huntingDistance = 150.0
	tooManyEnemies  = 5
	isolatedGroup   = 5
	evadeDistance   = 200.0
	followDistance  = 100.0
	leaderSpeedCost = 0.5
	restPhaseTicks  = 2000 * TicksPerSecond / 1000
	movePhaseTicks  = 3000 * TicksPerSecond / 1000
)

var (
	hunter  = hunterStrategy{}
	evader  = evaderStrategy{rival: TeamRed}
	gang    = gangStrategy{}
	resting = restStrategy{}
)

// strategyFor selects the decision function for a team.
func strategyFor(t TeamID) Strategy {
	switch t {
	case TeamRed:
		return hunter
	case TeamBlue:
		return evader
	case TeamGreen:
		return gang
	default:
		return resting
	}
}

// hunterStrategy chases isolated enemies and runs when outnumbered.
type hunterStrategy struct{}

func (hunterStrategy) Decide(w *World, u *Unit) Intent {
	nearby := 0
	minDist := math.Inf(1)
	var closest *Unit
	for _, e := range w.roster {
		if e.dead || e.team == u.team {
			continue
		}
		d := u.pos.Distance(e.pos)
		if d >= huntingDistance {
			continue
		}
		nearby++
		if d < minDist {
			minDist = d
			closest = e
		}
	}

	switch {
	case nearby > tooManyEnemies:
		return Intent{Kind: IntentFlee, Target: closest.pos}
	case nearby < isolatedGroup && closest != nil:
		return Intent{Kind: IntentSeek, Target: closest.pos, SlowingRadius: DefaultSlowingRadius}
	default:
		return Intent{Kind: IntentWander}
	}
}

// evaderStrategy flees the nearest unit of one rival team.
type evaderStrategy struct {
	rival TeamID
}

func (s evaderStrategy) Decide(w *World, u *Unit) Intent {
	minDist := evadeDistance
	var closest *Unit
	for _, e := range w.roster {
		if e.dead || e.team != s.rival || e == u {
			continue
		}
		if d := u.pos.Distance(e.pos); d < minDist {
			minDist = d
			closest = e
		}
	}
	if closest == nil {
		return Intent{Kind: IntentWander}
	}
	return Intent{Kind: IntentFlee, Target: closest.pos}
}

// gangStrategy keeps the team around one elected leader.
type gangStrategy struct{}

func (gangStrategy) Decide(w *World, u *Unit) Intent {
	leader := w.ensureLeader(u.team)
	if leader == nil {
		return Intent{Kind: IntentWander}
	}
	if leader == u || u.pos.Distance(leader.pos) < followDistance {
		return Intent{Kind: IntentWander}
	}
	return Intent{Kind: IntentSeek, Target: leader.pos}
}

// restStrategy alternates between resting and moving phases but issues no
// motion in either; members coast on their current velocity.
type restStrategy struct{}

func (restStrategy) Decide(*World, *Unit) Intent {
	return Intent{Kind: IntentNone}
}

// restTimer is the tick-driven rest/move phase clock.
type restTimer struct {
	resting   bool
	remaining int
}

func newRestTimer() restTimer {
	return restTimer{resting: true, remaining: restPhaseTicks}
}

// advance moves the clock one tick, reporting whether the phase flipped.
func (r *restTimer) advance() bool {
	r.remaining--
	if r.remaining > 0 {
		return false
	}
	r.resting = !r.resting
	if r.resting {
		r.remaining = restPhaseTicks
	} else {
		r.remaining = movePhaseTicks
	}
	return true
}

// Resting reports whether the team is in its rest phase.
func (t *Team) Resting() bool { return t.rest.resting }
