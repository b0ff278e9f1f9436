package game

import (
	"math"
	"strings"
	"testing"
)

func TestWinChance_Uniform(t *testing.T) {
	ts := newSim(t, WithUnit(TeamRed, 100, 100), WithUnit(TeamBlue, 200, 200), WithUnit(TeamBlue, 300, 300))
	if p := ts.World.winChance(ts.Units[0]); p != 0.5 {
		t.Fatalf("uniform policy should be 0.5, got %.3f", p)
	}
}

func TestWinChance_PopulationWeighted(t *testing.T) {
	opts := []SimOption{WithCombatPolicy(CombatPopulationWeighted), WithUnit(TeamRed, 100, 100)}
	for i := 0; i < 3; i++ {
		opts = append(opts, WithUnit(TeamBlue, 200+float64(i)*20, 200))
	}
	ts := newSim(t, opts...)
	w := ts.World
	if p := w.winChance(ts.Units[0]); math.Abs(p-0.75) > 1e-9 {
		t.Fatalf("red holds 1 of 4, expected 0.75, got %.3f", p)
	}
	if p := w.winChance(ts.Units[1]); math.Abs(p-0.25) > 1e-9 {
		t.Fatalf("blue holds 3 of 4, expected 0.25, got %.3f", p)
	}
}

func TestResolveCollision_Kill(t *testing.T) {
	ts := newSim(t, WithAnnounceKills(true), WithUnit(TeamRed, 100, 100), WithUnit(TeamBlue, 105, 100))
	w := ts.World
	a, b := ts.Units[0], ts.Units[1]
	w.resolveCollision(a, b)

	if a.IsDead() == b.IsDead() {
		t.Fatal("exactly one unit should die")
	}
	winner, loser := a, b
	if a.IsDead() {
		winner, loser = b, a
	}
	if w.Team(loser.Team()).Remaining != 0 || w.Team(winner.Team()).Remaining != 1 {
		t.Fatal("only the loser's team should lose a unit")
	}
	if w.Kills() != 1 || winner.Kills() != 1 || w.MaxKills() != 1 || w.HighestKiller() != winner.ID() {
		t.Fatalf("kill counters not updated: kills=%d winner=%d max=%d top=%d",
			w.Kills(), winner.Kills(), w.MaxKills(), w.HighestKiller())
	}
	if w.KillFeed.Len() != 1 {
		t.Fatalf("expected one kill announcement, got %d", w.KillFeed.Len())
	}
	msg := w.KillFeed.Recent()[0].Message
	if !strings.Contains(msg, winner.Label()+" killed "+loser.Label()) {
		t.Fatalf("unexpected kill message %q", msg)
	}
	if !ts.SimLog().HasEntry("combat", "kill", loser.Label()) {
		t.Fatal("expected combat kill log entry")
	}
}

func TestResolveCollision_QuietWithoutAnnouncements(t *testing.T) {
	ts := newSim(t, WithUnit(TeamRed, 100, 100), WithUnit(TeamBlue, 105, 100))
	ts.World.resolveCollision(ts.Units[0], ts.Units[1])
	if ts.World.KillFeed.Len() != 0 {
		t.Fatal("kill feed should stay empty unless announcements are on")
	}
}

func TestResolveCollision_Corruption(t *testing.T) {
	ts := newSim(t, WithCorruption(true), WithUnit(TeamGreen, 100, 100), WithUnit(TeamYellow, 105, 100))
	w := ts.World
	a, b := ts.Units[0], ts.Units[1]
	w.resolveCollision(a, b)
	if a.IsDead() || b.IsDead() {
		t.Fatal("corruption converts instead of killing")
	}
	if a.Team() != b.Team() {
		t.Fatal("loser should join the winner's team")
	}
	team := w.Team(a.Team())
	if team.Remaining != 2 || w.Population() != 2 {
		t.Fatalf("expected 2 on %s and population 2, got %d and %d", team.ID, team.Remaining, w.Population())
	}
	if !ts.SimLog().HasEntry("combat", "corrupt", "") {
		t.Fatal("expected corrupt log entry")
	}
}

func TestResolveCollision_SeededDraws(t *testing.T) {
	draw := func() []TeamID {
		var winners []TeamID
		for i := 0; i < 20; i++ {
			ts := newSim(t, WithSeed(int64(42+i)), WithUnit(TeamRed, 100, 100), WithUnit(TeamBlue, 105, 100))
			a, b := ts.Units[0], ts.Units[1]
			ts.World.resolveCollision(a, b)
			if a.IsDead() {
				winners = append(winners, b.Team())
			} else {
				winners = append(winners, a.Team())
			}
		}
		return winners
	}
	first, second := draw(), draw()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seed %d produced different winners: %s vs %s", 42+i, first[i], second[i])
		}
	}
}

func TestResolveCollision_RecordKiller(t *testing.T) {
	ts := newSim(t, WithCorruption(true),
		WithUnit(TeamRed, 100, 100),
		WithUnit(TeamBlue, 105, 100),
		WithUnit(TeamGreen, 110, 100),
	)
	w := ts.World
	w.resolveCollision(ts.Units[0], ts.Units[1])
	w.resolveCollision(ts.Units[0], ts.Units[2])

	best := 0
	for _, u := range ts.Units {
		if u.Kills() > best {
			best = u.Kills()
		}
	}
	if w.MaxKills() != best {
		t.Fatalf("max kills %d, best unit has %d", w.MaxKills(), best)
	}
	if w.Unit(w.HighestKiller()).Kills() != best {
		t.Fatal("highest killer should hold the record")
	}
}

func TestResolveCollision_CorruptionClampsVelocity(t *testing.T) {
	slowed := 0
	for seed := int64(1); seed <= 40; seed++ {
		ts := newSim(t,
			WithSeed(seed),
			WithCorruption(true),
			WithMovingUnit(TeamRed, 100, 100, 1, 0),
			WithMovingUnit(TeamGreen, 105, 100, 4, 0),
		)
		red, green := ts.Units[0], ts.Units[1]
		ts.World.resolveCollision(green, red)
		for _, u := range ts.Units {
			if speed := u.Velocity().Magnitude(); speed > u.MaxSpeed()+1e-9 {
				t.Fatalf("seed %d: %s speed %.4f > max %.4f", seed, u.Label(), speed, u.MaxSpeed())
			}
		}
		if green.Team() == TeamRed {
			slowed++
		}
	}
	if slowed == 0 {
		t.Fatal("expected at least one seed where red converts the faster green unit")
	}
}
