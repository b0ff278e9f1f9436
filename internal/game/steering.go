package game

import (
	"math"
	"math/rand"
)

const (
	maxForce             = 0.1
	wanderCircleDistance = 3.0
	wanderCircleRadius   = 3.0
	maxAngleChange       = 15 * math.Pi / 180
	aheadDistance        = 100.0
	aheadAngle           = 30 * math.Pi / 180

	// DefaultSlowingRadius is the arrival radius used by hunters.
	DefaultSlowingRadius = 20.0
)

// Steering accumulates behavioural forces for one unit and integrates them
// into its velocity and position once per tick.
type Steering struct {
	host  *Unit
	field Field
	rng   *rand.Rand

	wanderAngle float64 // radians, kept in (-π, π]
	avoiding    bool
	force       Vector // reset every tick
	lastForce   Vector // force applied by the most recent Update
}

func newSteering(host *Unit, field Field, rng *rand.Rand) *Steering {
	return &Steering{
		host:        host,
		field:       field,
		rng:         rng,
		wanderAngle: wrapAngle(rng.Float64() * 2 * math.Pi),
	}
}

// WanderAngle returns the current wander heading.
func (s *Steering) WanderAngle() float64 { return s.wanderAngle }

// IsAvoiding reports whether the unit is steering away from the field edge.
func (s *Steering) IsAvoiding() bool { return s.avoiding }

// Force returns the force accumulated so far this tick.
func (s *Steering) Force() Vector { return s.force }

// LastForce returns the clamped force applied by the most recent Update.
func (s *Steering) LastForce() Vector { return s.lastForce }

// Seek steers toward target. Inside slowingRadius the desired speed falls
// off linearly to zero; a radius of 0 disables arrival.
func (s *Steering) Seek(target Vector, slowingRadius float64) {
	u := s.host
	desired := target.Sub(u.pos)
	dist := desired.Magnitude()
	if dist < slowingRadius {
		desired = desired.ScaleToMagnitude(u.maxSpeed * (dist / slowingRadius))
	} else {
		desired = desired.ScaleToMagnitude(u.maxSpeed)
	}
	s.force = s.force.Add(desired.Sub(u.vel))
}

// Flee steers directly away from target at full speed.
func (s *Steering) Flee(target Vector) {
	u := s.host
	desired := u.pos.Sub(target).ScaleToMagnitude(u.maxSpeed)
	s.force = s.force.Add(desired.Sub(u.vel))
}

// Wander nudges the heading by a bounded random turn, projecting a point on
// a small circle ahead of the unit.
func (s *Steering) Wander() {
	circle := s.host.vel.ScaleToMagnitude(wanderCircleDistance)
	s.wanderAngle = wrapAngle(s.wanderAngle + s.rng.Float64()*2*maxAngleChange - maxAngleChange)
	displacement := FromAngle(s.wanderAngle, wanderCircleRadius)
	s.force = s.force.Add(circle.Add(displacement))
}

// CheckBounds probes ahead of the unit. If a probe leaves the field the
// unit starts avoiding: a seek toward the field centre is queued and true is
// returned so the caller skips its normal decision this tick.
func (s *Steering) CheckBounds() bool {
	u := s.host
	center := s.field.Center()

	ahead := u.vel.ScaleToMagnitude(aheadDistance)
	facing := ahead.Heading()
	left := FromAngle(facing+aheadAngle, aheadDistance/2)
	right := FromAngle(facing-aheadAngle, aheadDistance/2)

	if s.field.Contains(u.pos.Add(ahead)) &&
		s.field.Contains(u.pos.Add(left)) &&
		s.field.Contains(u.pos.Add(right)) {
		if s.avoiding {
			s.avoiding = false
			// Point the wander heading at the centre so the unit does not
			// turn straight back into the wall.
			s.wanderAngle = wrapAngle(center.Sub(u.pos).Heading())
		}
		return false
	}

	s.avoiding = true
	s.Seek(center, 0)
	return true
}

// Update clamps the accumulated force, applies it to velocity, clamps
// velocity to the host's max speed, and moves the host. It reports whether
// the new position is still inside the field.
func (s *Steering) Update() bool {
	u := s.host
	s.lastForce = s.force.Truncate(maxForce)
	u.vel = u.vel.Add(s.lastForce).Truncate(u.maxSpeed)
	u.pos = u.pos.Add(u.vel)
	s.force = Vector{}
	return s.field.Contains(u.pos)
}

// wrapAngle maps a into (-π, π].
func wrapAngle(a float64) float64 {
	a -= 2 * math.Pi * math.Floor((a+math.Pi)/(2*math.Pi))
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
