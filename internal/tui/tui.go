// Package tui renders the world in a terminal with tcell.
package tui

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
)

// statusRows are reserved at the bottom of the terminal.
const statusRows = 2

var teamStyles = [...]tcell.Style{
	game.TeamRed:    tcell.StyleDefault.Foreground(tcell.ColorRed),
	game.TeamBlue:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
	game.TeamGreen:  tcell.StyleDefault.Foreground(tcell.ColorLime),
	game.TeamYellow: tcell.StyleDefault.Foreground(tcell.ColorYellow),
}

var (
	graveStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
)

func teamStyle(t game.TeamID) tcell.Style {
	if !t.Valid() {
		return statusStyle
	}
	return teamStyles[t]
}

// Viewer draws a World onto a tcell screen and handles its keys.
type Viewer struct {
	screen tcell.Screen
	world  *game.World
	opts   config.ViewConfig
	status string
}

// NewViewer wraps an initialised screen.
func NewViewer(screen tcell.Screen, w *game.World, opts config.ViewConfig) *Viewer {
	return &Viewer{screen: screen, world: w, opts: opts}
}

// cell maps a world position onto the drawable terminal area.
func (v *Viewer) cell(p game.Vector) (int, int, bool) {
	cols, rows := v.screen.Size()
	rows -= statusRows
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	f := v.world.Field()
	x := int(math.Floor(p.X / f.Width * float64(cols)))
	y := int(math.Floor(p.Y / f.Height * float64(rows)))
	if x < 0 || x >= cols || y < 0 || y >= rows {
		return 0, 0, false
	}
	return x, y, true
}

// glyph picks an arrow for the unit's heading.
func glyph(vel game.Vector) rune {
	if vel.MagnitudeSquared() == 0 {
		return 'o'
	}
	// Screen y grows downward.
	octant := int(math.Round(vel.Heading()/(math.Pi/4))+8) % 8
	return [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}[octant]
}

// Draw renders one frame. It does not call Show.
func (v *Viewer) Draw() {
	v.screen.Clear()
	snap := v.world.Snapshot()

	if v.opts.DrawPaths {
		for _, u := range snap.Units {
			if u.Dead && !v.opts.DrawDeadPaths {
				continue
			}
			for _, p := range v.world.Trails.Path(u.ID) {
				if x, y, ok := v.cell(p); ok {
					v.screen.SetContent(x, y, '·', nil, teamStyle(u.Team).Dim(true))
				}
			}
		}
	}

	if v.opts.DrawGraves {
		for _, u := range snap.Units {
			if !u.Dead {
				continue
			}
			if x, y, ok := v.cell(u.Pos); ok {
				v.screen.SetContent(x, y, '+', nil, graveStyle)
			}
		}
	}

	if v.opts.DrawUnits {
		for _, u := range snap.Units {
			if u.Dead {
				continue
			}
			x, y, ok := v.cell(u.Pos)
			if !ok {
				continue
			}
			r := glyph(u.Vel)
			style := teamStyle(u.Team)
			if u.Leader {
				r = '@'
				style = style.Bold(true)
			}
			if v.opts.HighlightAvoiding && u.Avoiding {
				style = style.Reverse(true)
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
	}

	v.drawStatus(snap)
}

func (v *Viewer) drawStatus(snap game.Snapshot) {
	cols, rows := v.screen.Size()
	y := rows - statusRows
	x := 0
	if v.opts.ShowTeamInfo {
		for _, t := range snap.Teams {
			x = v.print(x, y, fmt.Sprintf("%s:%d ", t.Team.Letter(), t.Remaining), teamStyle(t.Team))
		}
	}
	state := fmt.Sprintf("T=%d kills=%d", snap.Tick, snap.Kills)
	if snap.Paused && snap.Outcome == game.OutcomeRunning {
		state += " PAUSED"
	}
	v.print(x, y, state, statusStyle)
	v.print(0, y+1, "q=quit space=pause x=graves t=trails o=optimize "+v.status, graveStyle)

	var banner string
	switch snap.Outcome {
	case game.OutcomeVictory:
		banner = fmt.Sprintf(" Game over, %s team wins! ", snap.Winner)
	case game.OutcomeExtinction:
		banner = " Something went wrong, everyone is dead "
	}
	if banner != "" {
		v.print((cols-len([]rune(banner)))/2, (rows-statusRows)/2, banner, bannerStyle)
	}
}

// print writes s starting at (x, y) and returns the column after it.
func (v *Viewer) print(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// HandleKey applies one key event. It returns false when the viewer
// should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}
	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		v.world.TogglePause()
	case 'x':
		if n, err := v.world.ClearDead(); err == nil {
			v.status = fmt.Sprintf("%d graves cleared", n)
		}
	case 't':
		if err := v.world.ClearTrails(); err == nil {
			v.status = "paths cleared"
		}
	case 'o':
		if n, err := v.world.OptimizeTrails(); err == nil {
			v.status = fmt.Sprintf("%d trail points snapped", n)
		}
	}
	return true
}

// Run drives the world at the given tick rate until ctx ends or the user
// quits. Key events are read on a separate goroutine and applied between
// ticks. A non-positive rate runs at game.TicksPerSecond.
func (v *Viewer) Run(ctx context.Context, tps int) error {
	interval := tickInterval(tps)
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case <-ticker.C:
			start := time.Now()
			v.world.Tick()
			if v.opts.OptimizeTrails && time.Since(start) >= v.opts.LagThreshold() {
				_, _ = v.world.OptimizeTrails()
			}
			v.Draw()
			v.screen.Show()
		}
	}
}

func tickInterval(tps int) time.Duration {
	if tps <= 0 {
		tps = game.TicksPerSecond
	}
	return time.Second / time.Duration(tps)
}
