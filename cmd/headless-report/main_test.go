package main

import (
	"testing"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

func smallSettings() game.Settings {
	s := game.DefaultSettings()
	s.Field = game.Field{Width: 300, Height: 300}
	s.UnitsPerTeam = 5
	s.FixedSpawn = false
	return s
}

func TestAggregate_CountsOutcomes(t *testing.T) {
	all := []runStats{
		{runIndex: 1, result: game.GameResult{Outcome: game.OutcomeVictory, Winner: game.TeamRed, Ticks: 100, MaxKills: 3}, recordKiller: "R4", kills: 10, firstKillTick: 20},
		{runIndex: 2, result: game.GameResult{Outcome: game.OutcomeVictory, Winner: game.TeamRed, Ticks: 300, MaxKills: 5}, recordKiller: "R9", kills: 12, firstKillTick: 40},
		{runIndex: 3, result: game.GameResult{Outcome: game.OutcomeExtinction, Ticks: 11}, firstKillTick: -1},
		{runIndex: 4, result: game.GameResult{Outcome: game.OutcomeRunning, Ticks: 500}, kills: 2, firstKillTick: 60},
	}

	tl := aggregate(all)
	if tl.wins[game.TeamRed] != 2 || tl.wins[game.TeamBlue] != 0 {
		t.Fatalf("unexpected wins %v", tl.wins)
	}
	if tl.extinctions != 1 || tl.unfinished != 1 {
		t.Fatalf("expected 1 extinction and 1 unfinished, got %d/%d", tl.extinctions, tl.unfinished)
	}
	if len(tl.finishTicks) != 3 {
		t.Fatalf("unfinished runs must not count toward finish ticks: %v", tl.finishTicks)
	}
	if got := avgTickString(tl.killTicks); got != "40.0" {
		t.Fatalf("avg first kill = %s, want 40.0", got)
	}
	if tl.bestKiller != "R9" || tl.bestKills != 5 || tl.bestRun != 2 {
		t.Fatalf("unexpected record killer %s/%d/%d", tl.bestKiller, tl.bestKills, tl.bestRun)
	}
	if tl.totalKills != 24 {
		t.Fatalf("total kills = %d", tl.totalKills)
	}
}

func TestFirstTick(t *testing.T) {
	entries := []game.SimLogEntry{
		{Tick: 3, Category: "team", Key: "leader"},
		{Tick: 7, Category: "combat", Key: "kill", Value: "B2"},
		{Tick: 9, Category: "combat", Key: "kill", Value: "G5"},
	}
	if got := firstTick(entries, "combat", "kill", ""); got != 7 {
		t.Fatalf("first kill tick = %d, want 7", got)
	}
	if got := firstTick(entries, "combat", "kill", "G"); got != 9 {
		t.Fatalf("first kill of G = %d, want 9", got)
	}
	if got := firstTick(entries, "bounds", "violation", ""); got != -1 {
		t.Fatalf("missing event should be -1, got %d", got)
	}
}

func TestRunBattle_Deterministic(t *testing.T) {
	a, err := runBattle(1, smallSettings(), 7, 2000)
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}
	b, err := runBattle(1, smallSettings(), 7, 2000)
	if err != nil {
		t.Fatalf("runBattle: %v", err)
	}
	if a.result != b.result || a.kills != b.kills || a.firstKillTick != b.firstKillTick {
		t.Fatalf("same seed diverged: %+v vs %+v", a.result, b.result)
	}
	if a.windowSummary == nil {
		t.Fatal("expected a window summary")
	}
}

func TestRunAll_OrderAndSeeds(t *testing.T) {
	all, err := runAll(smallSettings(), 6, 300, 100, 5, 3)
	if err != nil {
		t.Fatalf("runAll: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 runs, got %d", len(all))
	}
	for i, rs := range all {
		if rs.runIndex != i+1 || rs.seed != 100+int64(i)*5 {
			t.Fatalf("run %d has index %d seed %d", i, rs.runIndex, rs.seed)
		}
	}
}

func TestRunAll_BadSettings(t *testing.T) {
	s := smallSettings()
	s.Field.Width = 0
	if _, err := runAll(s, 2, 10, 1, 1, 2); err == nil {
		t.Fatal("expected invalid settings to fail")
	}
}
