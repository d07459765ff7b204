package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r3"

	"solarflight/sim"
)

const (
	craftSizePx    = 12.0
	trailAlphaMin  = 40
	offscreenSlack = 100.0
)

var (
	trailColor  = color.RGBA{255, 255, 255, 255}
	craftColor  = color.RGBA{0, 255, 0, 255}
	targetColor = color.RGBA{255, 200, 0, 255}

	collisionRingColor = color.RGBA{255, 60, 60, 160}
	orbitRingColor     = color.RGBA{60, 200, 255, 140}
	noticeRingColor    = color.RGBA{120, 120, 120, 110}
)

// Camera represents the viewport into the world's XY plane.
// World Y points up; screen Y points down.
type Camera struct {
	X, Y   float64 // Camera position in world coordinates
	Zoom   float64 // Pixels per world unit
	Width  float64 // Viewport width
	Height float64 // Viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height, zoom float64) *Camera {
	return &Camera{
		Zoom:   zoom,
		Width:  width,
		Height: height,
	}
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + c.Width/2
	sy := c.Height/2 - (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	wx := (sx-c.Width/2)/c.Zoom + c.X
	wy := (c.Height/2-sy)/c.Zoom + c.Y
	return wx, wy
}

// Follow centers the camera on p
func (c *Camera) Follow(p r3.Vec) {
	c.X = p.X
	c.Y = p.Y
}

// ZoomBy scales the zoom by factor, clamped to [lo, hi]
func (c *Camera) ZoomBy(factor, lo, hi float64) {
	c.Zoom = math.Max(lo, math.Min(hi, c.Zoom*factor))
}

func (c *Camera) visible(sx, sy, r float64) bool {
	return sx+r >= -offscreenSlack && sx-r <= c.Width+offscreenSlack &&
		sy+r >= -offscreenSlack && sy-r <= c.Height+offscreenSlack
}

// Renderer draws a snapshot
type Renderer struct {
	camera *Camera
	models *ModelLoader
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera, models *ModelLoader) *Renderer {
	return &Renderer{
		camera: camera,
		models: models,
	}
}

// Render draws the trail, bodies and spacecraft
func (r *Renderer) Render(screen *ebiten.Image, snap sim.Snapshot, visuals []bodyVisual, craftModel string, debug DebugState) {
	if !debug.HideTrail {
		r.drawTrail(screen, snap.Trail)
	}
	for i, b := range snap.Bodies {
		r.drawBody(screen, b, visuals[i], i == snap.Target)
		if debug.ShowBands {
			r.drawBands(screen, b, snap.NoticeFactor)
		}
	}
	r.drawSpacecraft(screen, snap.CraftPosition, snap.CraftRotation.Z, craftModel)
}

// drawTrail strokes consecutive trail points, fading older segments
func (r *Renderer) drawTrail(screen *ebiten.Image, trail []float64) {
	n := len(trail) / 3
	if n < 2 {
		return
	}
	px, py := r.camera.WorldToScreen(trail[0], trail[1])
	for i := 1; i < n; i++ {
		sx, sy := r.camera.WorldToScreen(trail[i*3], trail[i*3+1])
		clr := trailColor
		clr.A = uint8(trailAlphaMin + (255-trailAlphaMin)*i/n)
		vector.StrokeLine(screen, float32(px), float32(py), float32(sx), float32(sy), 1, clr, true)
		px, py = sx, sy
	}
}

func (r *Renderer) drawBody(screen *ebiten.Image, b sim.BodyView, v bodyVisual, targeted bool) {
	sx, sy := r.camera.WorldToScreen(b.Position.X, b.Position.Y)
	radius := b.Radius * r.camera.Zoom
	if !r.camera.visible(sx, sy, radius) {
		return
	}

	if img := r.models.Image(v.model); img != nil {
		drawImageCentered(screen, img, sx, sy, 2*radius, v.spin)
	} else {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(math.Max(radius, 1)), v.color, true)
		// Spin marker so rotation is visible without a model
		mx := sx + math.Cos(v.spin)*radius
		my := sy - math.Sin(v.spin)*radius
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(mx), float32(my), 1, color.RGBA{0, 0, 0, 120}, true)
	}

	if targeted {
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(radius+6), 2, targetColor, true)
	}
}

// drawBands outlines the collision, orbit and notice radii
func (r *Renderer) drawBands(screen *ebiten.Image, b sim.BodyView, noticeFactor float64) {
	sx, sy := r.camera.WorldToScreen(b.Position.X, b.Position.Y)
	rings := []struct {
		radius float64
		clr    color.RGBA
	}{
		{b.Radius, collisionRingColor},
		{b.OrbitRadius, orbitRingColor},
		{b.OrbitRadius * noticeFactor, noticeRingColor},
	}
	for _, ring := range rings {
		vector.StrokeCircle(screen, float32(sx), float32(sy), float32(ring.radius*r.camera.Zoom), 1, ring.clr, true)
	}
}

func (r *Renderer) drawSpacecraft(screen *ebiten.Image, pos r3.Vec, heading float64, model string) {
	sx, sy := r.camera.WorldToScreen(pos.X, pos.Y)

	if img := r.models.Image(model); img != nil {
		drawImageCentered(screen, img, sx, sy, 2*craftSizePx, heading)
		return
	}

	// Nose along the rotated +Y axis; screen Y is flipped.
	fx, fy := -math.Sin(heading), -math.Cos(heading)
	rx, ry := -fy, fx
	noseX, noseY := sx+fx*craftSizePx, sy+fy*craftSizePx
	leftX := sx - fx*craftSizePx*0.6 - rx*craftSizePx*0.6
	leftY := sy - fy*craftSizePx*0.6 - ry*craftSizePx*0.6
	rightX := sx - fx*craftSizePx*0.6 + rx*craftSizePx*0.6
	rightY := sy - fy*craftSizePx*0.6 + ry*craftSizePx*0.6

	vector.StrokeLine(screen, float32(noseX), float32(noseY), float32(leftX), float32(leftY), 2, craftColor, true)
	vector.StrokeLine(screen, float32(leftX), float32(leftY), float32(rightX), float32(rightY), 2, craftColor, true)
	vector.StrokeLine(screen, float32(rightX), float32(rightY), float32(noseX), float32(noseY), 2, craftColor, true)
}

// drawImageCentered draws img scaled to size pixels across, rotated counter-clockwise by angle
func drawImageCentered(screen, img *ebiten.Image, sx, sy, size, angle float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(size/float64(max(w, h)), size/float64(max(w, h)))
	op.GeoM.Rotate(-angle)
	op.GeoM.Translate(sx, sy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
