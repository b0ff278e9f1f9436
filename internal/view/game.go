// Package view is the ebiten window: it drives the world at the display
// rate, renders every frame and maps mouse and keys onto world commands.
package view

import (
	"fmt"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Steering-Wars/internal/config"
	"github.com/Garsondee/Steering-Wars/internal/game"
)

const (
	unitSize      = 7.0
	statusTicks   = 3 * game.TicksPerSecond
	feedLines     = 6
	reportHistory = 600
	selectRadius  = 15.0
)

// KillCue is notified of every kill so it can be announced audibly.
type KillCue interface {
	PlayKill(team game.TeamID)
}

// Game implements ebiten.Game around one World.
type Game struct {
	world    *game.World
	opts     config.ViewConfig
	reporter *game.SimReporter
	cue      KillCue
	cam      camera

	width, height int
	showHUD       bool
	selected      game.UnitID

	prevKeys       map[ebiten.Key]bool
	prevMouseLeft  bool
	prevMouseRight bool

	logCursor  int
	status     string
	statusLeft int

	// copy puts text on the system clipboard.
	copy    func(string) error
	// keyDown reports whether a key is held.
	keyDown func(ebiten.Key) bool
}

// New wraps w for display. cue may be nil.
func New(w *game.World, opts config.ViewConfig, cue KillCue) *Game {
	f := w.Field()
	return &Game{
		world:    w,
		opts:     opts,
		reporter: game.NewSimReporter(reportHistory),
		cue:      cue,
		cam:      newCamera(f),
		width:    int(f.Width),
		height:   int(f.Height),
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
		copy:     clipboard.WriteAll,
		keyDown:  ebiten.IsKeyPressed,
	}
}

// Reporter returns the periodic population reporter.
func (g *Game) Reporter() *game.SimReporter { return g.reporter }

func (g *Game) Update() error {
	g.handleInput()

	start := time.Now()
	ticked := g.world.Tick()
	g.afterTick(ticked, time.Since(start))
	return nil
}

// afterTick runs the per-frame bookkeeping that follows a world tick.
func (g *Game) afterTick(ticked bool, elapsed time.Duration) {
	if g.statusLeft > 0 {
		g.statusLeft--
	}
	if !ticked {
		return
	}
	if g.world.CurrentTick()%game.ReportInterval == 0 {
		g.reporter.Collect(g.world)
	}

	var kills []game.SimLogEntry
	kills, g.logCursor = g.world.Log().KillsSince(g.logCursor)
	if g.cue != nil {
		for _, k := range kills {
			if t, ok := game.ParseTeam(k.Team); ok {
				g.cue.PlayKill(t)
			}
		}
	}

	if g.opts.OptimizeTrails && elapsed >= g.opts.LagThreshold() {
		if n, err := g.world.OptimizeTrails(); err == nil && n > 0 {
			g.flash(fmt.Sprintf("lag %s: %d trail points snapped", elapsed.Round(time.Millisecond), n))
		}
	}
}

func (g *Game) flash(msg string) {
	g.status = msg
	g.statusLeft = statusTicks
}

// keyPressed reports a rising edge on k and records its state.
func (g *Game) keyPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = g.keyDown(k)
	return cur[k] && !g.prevKeys[k]
}

// handleInput processes mouse and key presses (edge-triggered).
func (g *Game) handleInput() {
	g.handleKeys()

	_, wy := ebiten.Wheel()
	g.cam.scroll(wy)

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft {
		g.world.TogglePause()
	}
	g.prevMouseLeft = left

	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if right && !g.prevMouseRight {
		g.selectAt(g.cam.toWorld(ebiten.CursorPosition()))
	}
	g.prevMouseRight = right
}

// handleKeys applies key presses on their rising edge. Every watched key
// is sampled each frame so held keys never re-fire.
func (g *Game) handleKeys() {
	currentKeys := map[ebiten.Key]bool{}

	if g.keyPressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	space := g.keyPressed(currentKeys, ebiten.KeySpace)
	p := g.keyPressed(currentKeys, ebiten.KeyP)
	if space || p {
		g.world.TogglePause()
	}
	if g.keyPressed(currentKeys, ebiten.KeyC) {
		g.copyReport()
	}
	if g.keyPressed(currentKeys, ebiten.KeyO) {
		if n, err := g.world.OptimizeTrails(); err == nil {
			g.flash(fmt.Sprintf("%d trail points snapped", n))
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyT) {
		if err := g.world.ClearTrails(); err == nil {
			g.flash("paths cleared")
		}
	}
	if g.keyPressed(currentKeys, ebiten.KeyX) {
		if n, err := g.world.ClearDead(); err == nil {
			g.flash(fmt.Sprintf("%d graves cleared", n))
		}
	}

	g.prevKeys = currentKeys
}

// selectAt picks the living unit nearest p, or clears the selection.
func (g *Game) selectAt(p game.Vector) {
	g.selected = 0
	if u := g.world.NearestUnit(p, selectRadius/g.cam.zoom); u != nil {
		g.selected = u.ID()
		g.flash("selected " + u.Label())
	}
}

// copyReport puts the debug report on the clipboard.
func (g *Game) copyReport() {
	report := g.world.DebugReport(g.selected, 0) + "\n" + g.reporter.FormatLatest()
	if err := g.copy(report); err != nil {
		g.flash("clipboard unavailable: " + err.Error())
		return
	}
	g.flash("report copied to clipboard")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})
	snap := g.world.Snapshot()

	// Field border.
	x0, y0 := g.cam.toScreen(game.Vec(0, 0))
	x1, y1 := g.cam.toScreen(game.Vec(snap.Field.Width, snap.Field.Height))
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)

	if g.opts.DrawPaths {
		g.drawTrails(screen, snap)
	}
	if g.opts.DrawUnits {
		g.drawUnits(screen, snap)
	}
	if g.showHUD {
		g.drawHUD(screen, snap)
	}
	g.drawKillFeed(screen)

	if msg := bannerText(snap); msg != "" {
		face := basicfont.Face7x13
		w := len(msg) * 7
		text.Draw(screen, msg, face, (g.width-w)/2, g.height/2, color.White)
	}
}

func (g *Game) drawTrails(screen *ebiten.Image, snap game.Snapshot) {
	for _, u := range snap.Units {
		if u.Dead && !g.opts.DrawDeadPaths {
			continue
		}
		path := g.world.Trails.Path(u.ID)
		if len(path) == 0 {
			continue
		}
		clr := game.TeamColor(u.Team)
		clr.A = 90
		if u.Dead {
			clr.A = 40
		}
		px, py := g.cam.toScreen(path[0])
		for _, p := range path[1:] {
			x, y := g.cam.toScreen(p)
			vector.StrokeLine(screen, px, py, x, y, 1.0, clr, false)
			px, py = x, y
		}
		if !u.Dead {
			x, y := g.cam.toScreen(u.Pos)
			vector.StrokeLine(screen, px, py, x, y, 1.0, clr, false)
		}
	}
}

func (g *Game) drawUnits(screen *ebiten.Image, snap game.Snapshot) {
	size := float32(g.cam.zoom)
	for _, u := range snap.Units {
		sx, sy := g.cam.toScreen(u.Pos)
		if u.Dead {
			if g.opts.DrawGraves {
				d := 3 * size
				vector.StrokeLine(screen, sx-d, sy-d, sx+d, sy+d, 1.0, graveColour, false)
				vector.StrokeLine(screen, sx-d, sy+d, sx+d, sy-d, 1.0, graveColour, false)
			}
			continue
		}

		tri := triangle(u.Pos, u.Vel, unitSize)
		var path vector.Path
		for i, p := range tri {
			x, y := g.cam.toScreen(p)
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		path.Close()
		clr := game.TeamColor(u.Team)
		vector.FillPath(screen, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true, ColorScale: colorScale(clr)})

		if g.opts.HighlightAvoiding && u.Avoiding {
			vector.StrokeCircle(screen, sx, sy, 8*size, 1.0, color.White, true)
		}
		if u.Leader {
			// Flag on a short pole.
			vector.StrokeLine(screen, sx, sy, sx, sy-14*size, 1.0, color.White, false)
			vector.FillRect(screen, sx, sy-14*size, 7*size, 4*size, clr, false)
		}
		if u.ID == g.selected {
			vector.StrokeCircle(screen, sx, sy, 11*size, 1.5, hudWarn, true)
		}
	}
}

func colorScale(c color.RGBA) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}

// drawHUD renders the info panel and key legend in the top-left corner.
func (g *Game) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	mx, my := ebiten.CursorPosition()
	lines := hudLines(snap, g.opts, ebiten.ActualFPS(), g.cam.toWorld(mx, my))
	for _, l := range keyLegend {
		lines = append(lines, hudLine{l, hudDim})
	}
	if g.statusLeft > 0 {
		lines = append(lines, hudLine{g.status, hudText})
	}

	const lineH = 15
	const padX, padY = 6, 4
	maxLen := 0
	for _, l := range lines {
		if len(l.text) > maxLen {
			maxLen = len(l.text)
		}
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	vector.FillRect(screen, 4, 4, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 190}, false)
	vector.StrokeRect(screen, 4, 4, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	face := basicfont.Face7x13
	for i, l := range lines {
		text.Draw(screen, l.text, face, 4+padX, 4+padY+(i+1)*lineH-3, l.clr)
	}
}

// drawKillFeed lists the latest kills in the top-right corner.
func (g *Game) drawKillFeed(screen *ebiten.Image) {
	recent := g.world.KillFeed.Recent()
	if len(recent) > feedLines {
		recent = recent[len(recent)-feedLines:]
	}
	face := basicfont.Face7x13
	for i, e := range recent {
		x := g.width - len(e.Message)*7 - 8
		text.Draw(screen, e.Message, face, x, 18+i*15, game.TeamColor(e.Team))
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
