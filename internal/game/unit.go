package game

import "fmt"

// UnitID is a unit's stable identity. IDs start at 1; 0 means "no unit".
type UnitID int

// Unit is one autonomous agent.
type Unit struct {
	id       UnitID
	team     TeamID
	pos      Vector
	vel      Vector
	maxSpeed float64
	steering *Steering

	dead  bool
	kills int

	// combatTick is the last tick this unit took part in a resolved
	// collision; a unit fights at most once per tick.
	combatTick int
}

func (u *Unit) ID() UnitID { return u.id }
func (u *Unit) Team() TeamID { return u.team }
func (u *Unit) Position() Vector { return u.pos }
func (u *Unit) Velocity() Vector { return u.vel }
func (u *Unit) MaxSpeed() float64 { return u.maxSpeed }
func (u *Unit) IsDead() bool { return u.dead }
func (u *Unit) Kills() int { return u.kills }
func (u *Unit) Steering() *Steering { return u.steering }

// Label is a short display name such as "R12".
func (u *Unit) Label() string {
	return fmt.Sprintf("%s%d", u.team.Letter(), u.id)
}

// Update runs one tick for the unit: boundary avoidance or team decision,
// motion integration, the fence check, trail sampling and collision.
func (u *Unit) Update(w *World) {
	if u.dead {
		return
	}

	if u.steering.CheckBounds() {
		w.log.AddVerbose(w.tick, u.Label(), u.team.String(), "bounds", "avoiding", u.pos.String(), 0)
	} else {
		strategyFor(u.team).Decide(w, u).apply(u.steering)
	}

	if !u.steering.Update() {
		w.log.Add(w.tick, u.Label(), u.team.String(), "bounds", "violation", u.pos.String(), 0)
		if w.settings.ElectricFence {
			u.dead = true
			w.teams[u.team].Remaining--
			w.log.Add(w.tick, u.Label(), u.team.String(), "bounds", "fence_kill", u.pos.String(), 0)
			w.noteElimination(u.team)
		}
	}

	if w.tick%recordInterval == 0 {
		w.Trails.Record(u.id, u.pos)
	}

	if u.dead {
		return
	}
	u.collisionCheck(w)
}

// collisionCheck resolves combat with the first living enemy within
// collision range, in roster order.
func (u *Unit) collisionCheck(w *World) {
	if u.combatTick == w.tick {
		return
	}
	for _, other := range w.roster {
		if other == u || other.dead || other.team == u.team || other.combatTick == w.tick {
			continue
		}
		if u.pos.DistanceSquared(other.pos) < collisionDistance*collisionDistance {
			w.resolveCollision(u, other)
			return
		}
	}
}
