package game

import (
	"fmt"
	"strings"
)

// DebugReport renders a plain-text report of the world for pasting into a
// bug report. If selected is non-zero, that unit's recent log entries over
// the last lastTicks ticks are appended.
func (w *World) DebugReport(selected UnitID, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	toTick := w.tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	s := w.settings
	var b strings.Builder
	fmt.Fprintf(&b, "--- Steering Wars debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d state=%s paused=%t\n", s.Seed, w.tick, w.outcome, w.paused)
	fmt.Fprintf(&b, "field=%.0fx%.0f per_team=%d fixed_spawn=%t fence=%t combat=%s corruption=%t\n\n",
		s.Field.Width, s.Field.Height, s.UnitsPerTeam, s.FixedSpawn, s.ElectricFence, s.Combat, s.Corruption)

	b.WriteString(w.log.Summary(w))
	fmt.Fprintf(&b, "trail points=%d roster=%d\n", w.Trails.Points(), len(w.roster))

	u := w.byID[selected]
	if u == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "\n== SELECTED (%s) ==\n", u.Label())
	fmt.Fprintf(&b, "pos=%s vel=(%.2f, %.2f) speed=%.2f/%.2f dead=%t avoiding=%t leader=%t kills=%d wander=%.2f\n",
		u.pos, u.vel.X, u.vel.Y, u.vel.Magnitude(), u.maxSpeed,
		u.dead, u.steering.avoiding, w.IsLeader(u), u.kills, u.steering.wanderAngle)

	label := u.Label()
	var events []string
	for _, e := range w.log.FilterTickRange(fromTick, toTick) {
		if e.Unit == label || (e.Category == "combat" && e.Value == label) {
			events = append(events, e.String())
		}
	}
	if len(events) == 0 {
		fmt.Fprintf(&b, "(no events in T=%d..%d)\n", fromTick, toTick)
		return b.String()
	}
	fmt.Fprintf(&b, "events T=%d..%d:\n", fromTick, toTick)
	for _, e := range events {
		b.WriteString("  ")
		b.WriteString(e)
		b.WriteByte('\n')
	}
	return b.String()
}

// NearestUnit returns the living unit closest to p within maxDist, or nil.
func (w *World) NearestUnit(p Vector, maxDist float64) *Unit {
	var best *Unit
	bestD := maxDist * maxDist
	for _, u := range w.roster {
		if u.dead {
			continue
		}
		if d := u.pos.DistanceSquared(p); d < bestD {
			bestD = d
			best = u
		}
	}
	return best
}
