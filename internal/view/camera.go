package view

import (
	"math"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

const (
	zoomStep = 0.1
	zoomMin  = 0.2
	zoomMax  = 5.0
)

// camera maps world coordinates to the screen. The world point center is
// drawn at the middle of the screen, scaled by zoom.
type camera struct {
	center  game.Vector
	zoom    float64
	screenW float64
	screenH float64
}

func newCamera(f game.Field) camera {
	return camera{center: f.Center(), zoom: 1, screenW: f.Width, screenH: f.Height}
}

func (c camera) toScreen(p game.Vector) (float32, float32) {
	x := (p.X-c.center.X)*c.zoom + c.screenW/2
	y := (p.Y-c.center.Y)*c.zoom + c.screenH/2
	return float32(x), float32(y)
}

func (c camera) toWorld(sx, sy int) game.Vector {
	return game.Vec(
		(float64(sx)-c.screenW/2)/c.zoom+c.center.X,
		(float64(sy)-c.screenH/2)/c.zoom+c.center.Y,
	)
}

// scroll applies one wheel movement; each notch changes zoom by zoomStep.
func (c *camera) scroll(notches float64) {
	if notches == 0 {
		return
	}
	c.zoom = math.Max(zoomMin, math.Min(zoomMax, c.zoom+notches*zoomStep))
}

// triangle returns the three corners of a unit glyph pointing along vel.
func triangle(pos, vel game.Vector, size float64) [3]game.Vector {
	heading := vel.Heading()
	dir := game.FromAngle(heading, 1)
	perp := game.Vec(-dir.Y, dir.X)
	back := pos.Sub(dir.Scale(size * 0.6))
	return [3]game.Vector{
		pos.Add(dir.Scale(size)),
		back.Add(perp.Scale(size * 0.5)),
		back.Sub(perp.Scale(size * 0.5)),
	}
}
