package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(cols, rows)
	return screen
}

func newWorld(t *testing.T) *game.World {
	t.Helper()
	s := game.DefaultSettings()
	s.Field = game.Field{Width: 800, Height: 400}
	s.UnitsPerTeam = 0
	s.FixedSpawn = false
	s.ElectricFence = false
	w, err := game.NewWorld(s)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func rowText(screen tcell.SimulationScreen, y, cols int) string {
	var sb strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestViewer_DrawsUnitsAndStatus(t *testing.T) {
	screen := newScreen(t, 80, 22)
	defer screen.Fini()
	w := newWorld(t)
	red, err := w.Spawn(400, 200, game.TeamRed)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if _, err := w.Spawn(100, 100, game.TeamBlue); err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	v := NewViewer(screen, w, config.Default().View)
	v.Draw()

	x, y, ok := v.cell(red.Position())
	if !ok || x != 40 || y != 10 {
		t.Fatalf("red should map to cell 40,10, got %d,%d (%t)", x, y, ok)
	}
	r, _, style, _ := screen.GetContent(x, y)
	if r != glyph(red.Velocity()) {
		t.Fatalf("expected heading glyph at red's cell, got %q", r)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.ColorRed {
		t.Fatalf("red unit should be drawn red, got %v", fg)
	}

	status := rowText(screen, 20, 80)
	for _, want := range []string{"R:1", "B:1", "G:0", "T=0"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status row missing %q: %q", want, status)
		}
	}
}

func TestViewer_GravesAndBanner(t *testing.T) {
	screen := newScreen(t, 80, 22)
	defer screen.Fini()
	w := newWorld(t)
	if _, err := w.Spawn(200, 100, game.TeamRed); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if _, err := w.Spawn(203, 100, game.TeamBlue); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	w.Tick()
	if !w.GameOver() {
		t.Fatal("setup: the collision should end the game")
	}

	opts := config.Default().View
	opts.DrawUnits = false
	v := NewViewer(screen, w, opts)
	v.Draw()
	graves := 0
	for _, u := range w.Units() {
		if !u.IsDead() {
			continue
		}
		x, y, _ := v.cell(u.Position())
		if r, _, _, _ := screen.GetContent(x, y); r == '+' {
			graves++
		}
	}
	if graves != 1 {
		t.Fatalf("expected one grave, got %d", graves)
	}
	if banner := rowText(screen, 10, 80); !strings.Contains(banner, "team wins") {
		t.Fatalf("expected victory banner, got %q", banner)
	}
}

func TestViewer_Keys(t *testing.T) {
	screen := newScreen(t, 40, 12)
	defer screen.Fini()
	w := newWorld(t)
	v := NewViewer(screen, w, config.Default().View)

	if !v.HandleKey(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) || !w.Paused() {
		t.Fatal("space should pause")
	}
	v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if v.status != "0 graves cleared" {
		t.Fatalf("unexpected status %q", v.status)
	}
	if v.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if v.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestGlyph(t *testing.T) {
	cases := map[rune]game.Vector{
		'→': game.Vec(1, 0),
		'↓': game.Vec(0, 1),
		'←': game.Vec(-1, 0),
		'↑': game.Vec(0, -1),
		'↘': game.Vec(1, 1),
		'o': {},
	}
	for want, vel := range cases {
		if got := glyph(vel); got != want {
			t.Errorf("glyph(%v) = %q, want %q", vel, got, want)
		}
	}
}

func TestTickInterval(t *testing.T) {
	if got := tickInterval(30); got != time.Second/30 {
		t.Fatalf("tickInterval(30) = %v", got)
	}
	for _, tps := range []int{0, -5} {
		if got := tickInterval(tps); got != time.Second/game.TicksPerSecond {
			t.Fatalf("tickInterval(%d) = %v, want the default rate", tps, got)
		}
	}
}
