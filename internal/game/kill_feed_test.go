package game

import "testing"

func TestKillFeed_Wraps(t *testing.T) {
	kf := NewKillFeed()
	if len(kf.Recent()) != 0 {
		t.Fatal("new feed should be empty")
	}
	for i := 0; i < killFeedSize+5; i++ {
		kf.Add(i, TeamRed, "kill")
	}
	if kf.Len() != killFeedSize {
		t.Fatalf("expected %d entries, got %d", killFeedSize, kf.Len())
	}
	recent := kf.Recent()
	if recent[0].Tick != 5 || recent[len(recent)-1].Tick != killFeedSize+4 {
		t.Fatalf("expected ticks 5..%d, got %d..%d", killFeedSize+4, recent[0].Tick, recent[len(recent)-1].Tick)
	}
}

func TestSimLog_KillsSince(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "R1", "red", "combat", "kill", "B2", 2)
	sl.Add(1, "G3", "green", "team", "leader", "", 3)
	kills, cursor := sl.KillsSince(0)
	if len(kills) != 1 || cursor != 2 {
		t.Fatalf("expected 1 kill and cursor 2, got %d and %d", len(kills), cursor)
	}
	sl.Add(2, "Y4", "yellow", "combat", "kill", "R1", 1)
	kills, cursor = sl.KillsSince(cursor)
	if len(kills) != 1 || kills[0].Unit != "Y4" || cursor != 3 {
		t.Fatalf("expected only the new kill, got %+v (cursor %d)", kills, cursor)
	}
	if team, ok := ParseTeam(kills[0].Team); !ok || team != TeamYellow {
		t.Fatalf("ParseTeam(%q) = %v %v", kills[0].Team, team, ok)
	}
}
