package game

import (
	"math"
	"testing"
)

// loneUnit builds a world with one stationary unit of team t at (x, y).
func loneUnit(t *testing.T, team TeamID, x, y float64, opts ...SimOption) (*TestSim, *Unit) {
	t.Helper()
	opts = append(opts, WithMovingUnit(team, x, y, 0, 0))
	ts, err := NewTestSim(opts...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts, ts.Units[len(ts.Units)-1]
}

func TestSteering_SeekClampsForce(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 250, 250)
	s := u.Steering()

	s.Seek(Vec(350, 250), 0)
	if f := s.Force(); math.Abs(f.X-1.5) > 1e-9 || f.Y != 0 {
		t.Fatalf("expected raw force (1.5,0), got %v", f)
	}
	if !s.Update() {
		t.Fatal("unit should still be inside the field")
	}
	if got := s.LastForce().Magnitude(); math.Abs(got-maxForce) > 1e-9 {
		t.Fatalf("applied force should be clamped to %.2f, got %.4f", maxForce, got)
	}
	if got := u.Position(); math.Abs(got.X-250.1) > 1e-9 || got.Y != 250 {
		t.Fatalf("expected (250.1,250), got %.4f,%.4f", got.X, got.Y)
	}
	if s.Force() != (Vector{}) {
		t.Fatalf("force should reset after Update, got %v", s.Force())
	}
}

func TestSteering_SeekArrivalSlowsDown(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 250, 250)
	s := u.Steering()
	s.Seek(Vec(260, 250), DefaultSlowingRadius)
	// Half-way into the slowing radius: half the max speed.
	want := u.MaxSpeed() * 0.5
	if got := s.Force().Magnitude(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected desired speed %.3f, got %.3f", want, got)
	}
}

func TestSteering_SeekZeroRadiusHasNoArrival(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 250, 250)
	s := u.Steering()
	s.Seek(Vec(251, 250), 0)
	if got := s.Force().Magnitude(); math.Abs(got-u.MaxSpeed()) > 1e-9 {
		t.Fatalf("expected full speed %.3f, got %.3f", u.MaxSpeed(), got)
	}
}

func TestSteering_FleePointsAway(t *testing.T) {
	_, u := loneUnit(t, TeamBlue, 250, 250)
	s := u.Steering()
	s.Flee(Vec(300, 250))
	if f := s.Force(); f.X >= 0 || math.Abs(f.Magnitude()-u.MaxSpeed()) > 1e-9 {
		t.Fatalf("flee force should point -x at full speed, got %v", f)
	}
}

func TestSteering_WanderAngleStaysBounded(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 250, 250, WithSeed(7))
	s := u.Steering()
	for i := 0; i < 5000; i++ {
		before := s.WanderAngle()
		s.Wander()
		after := s.WanderAngle()
		if after <= -math.Pi || after > math.Pi {
			t.Fatalf("step %d: wander angle %.4f outside (-π, π]", i, after)
		}
		step := math.Abs(wrapAngle(after - before))
		if step > maxAngleChange+1e-9 {
			t.Fatalf("step %d: turned %.4f rad, max is %.4f", i, step, maxAngleChange)
		}
		s.force = Vector{}
	}
}

func TestSteering_CheckBoundsClear(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 250, 250)
	u.vel = Vec(1, 0)
	if u.Steering().CheckBounds() {
		t.Fatal("unit in the middle should not be avoiding")
	}
	if u.Steering().IsAvoiding() {
		t.Fatal("avoiding flag should be false")
	}
}

func TestSteering_CheckBoundsNearWall(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 450, 250)
	u.vel = Vec(1, 0)
	s := u.Steering()
	if !s.CheckBounds() {
		t.Fatal("ahead probe leaves the field, expected avoidance")
	}
	if !s.IsAvoiding() {
		t.Fatal("avoiding flag should be set")
	}
	if s.Force().X >= 0 {
		t.Fatalf("avoidance should steer back toward the centre, got %v", s.Force())
	}
}

func TestSteering_SideProbesAreSymmetric(t *testing.T) {
	// Heading +x along the bottom edge: only the right-hand probe (+angle in
	// screen coordinates) leaves the field.
	_, u := loneUnit(t, TeamRed, 250, 480)
	u.vel = Vec(1, 0)
	if !u.Steering().CheckBounds() {
		t.Fatal("probe toward the bottom edge should trigger avoidance")
	}

	// Mirror case along the top edge.
	_, u2 := loneUnit(t, TeamRed, 250, 20)
	u2.vel = Vec(1, 0)
	if !u2.Steering().CheckBounds() {
		t.Fatal("probe toward the top edge should trigger avoidance")
	}
}

func TestSteering_ClearingAvoidanceFacesCentre(t *testing.T) {
	_, u := loneUnit(t, TeamRed, 450, 250)
	u.vel = Vec(-1, 0)
	s := u.Steering()
	s.avoiding = true
	if s.CheckBounds() {
		t.Fatal("all probes are inside, expected no avoidance")
	}
	if s.IsAvoiding() {
		t.Fatal("avoiding flag should clear")
	}
	if math.Abs(s.WanderAngle()-math.Pi) > 1e-9 {
		t.Fatalf("wander angle should face the centre (π), got %.4f", s.WanderAngle())
	}
}

func TestSteering_VelocityNeverExceedsMaxSpeed(t *testing.T) {
	w, err := NewWorld(Settings{
		Field:        Field{Width: 800, Height: 600},
		UnitsPerTeam: 20,
		Seed:         3,
	})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if err := w.Populate(); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	for i := 0; i < 400 && w.Tick(); i++ {
		for _, u := range w.Units() {
			if u.IsDead() {
				continue
			}
			if v := u.Velocity().Magnitude(); v > u.MaxSpeed()+1e-9 {
				t.Fatalf("T=%d %s speed %.4f > max %.4f", w.CurrentTick(), u.Label(), v, u.MaxSpeed())
			}
			if f := u.Steering().LastForce().Magnitude(); f > maxForce+1e-9 {
				t.Fatalf("T=%d %s force %.4f > %.2f", w.CurrentTick(), u.Label(), f, maxForce)
			}
		}
	}
}

func TestWrapAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		if got := wrapAngle(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("wrapAngle(%.4f) = %.4f, want %.4f", c.in, got, c.want)
		}
	}
}
