package game

import (
	"errors"
	"testing"
)

func TestTrailStore_OptimizeKeepsEvenPoints(t *testing.T) {
	ts := NewTrailStore()
	for i := 0; i < 5; i++ {
		ts.Record(1, Vec(float64(i), 0))
	}
	ts.Record(2, Vec(9, 9))

	if removed := ts.Optimize(); removed != 2 {
		t.Fatalf("expected 2 points removed, got %d", removed)
	}
	got := ts.Path(1)
	want := []Vector{Vec(0, 0), Vec(2, 0), Vec(4, 0)}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d: got %v want %v", i, got[i], want[i])
		}
	}
	if len(ts.Path(2)) != 1 {
		t.Fatal("single-point trail should keep its point")
	}
}

func TestTrailStore_ClearAndRemove(t *testing.T) {
	ts := NewTrailStore()
	ts.Record(1, Vec(1, 1))
	ts.Record(2, Vec(2, 2))
	ts.Remove(2)
	if ts.Points() != 1 {
		t.Fatalf("expected 1 point after remove, got %d", ts.Points())
	}
	ts.Clear()
	if ts.Points() != 0 {
		t.Fatalf("expected empty store, got %d points", ts.Points())
	}
	ts.Record(1, Vec(3, 3))
	if len(ts.Path(1)) != 1 {
		t.Fatal("a cleared unit should keep recording")
	}
}

func TestWorld_TrailMaintenance(t *testing.T) {
	ts := newSim(t, WithUnit(TeamRed, 100, 100), WithUnit(TeamBlue, 400, 400))
	w := ts.World
	id := ts.Units[0].ID()
	for i := 0; i < 3; i++ {
		w.Trails.Record(id, Vec(100, 100))
	}

	w.inTick = true
	if _, err := w.OptimizeTrails(); !errors.Is(err, ErrMidTick) {
		t.Fatalf("expected ErrMidTick, got %v", err)
	}
	if err := w.ClearTrails(); !errors.Is(err, ErrMidTick) {
		t.Fatalf("expected ErrMidTick, got %v", err)
	}
	w.inTick = false

	if n, err := w.OptimizeTrails(); err != nil || n != 2 {
		t.Fatalf("expected 2 removed, got %d (%v)", n, err)
	}
	if err := w.ClearTrails(); err != nil {
		t.Fatalf("ClearTrails: %v", err)
	}
	if w.Trails.Points() != 0 {
		t.Fatal("trails should be empty")
	}
	if ts.SimLog().CountCategory("trail", "") != 2 {
		t.Fatalf("expected optimize and clear log entries, got %d", ts.SimLog().CountCategory("trail", ""))
	}
}
