package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"solarflight/sim"
)

// pickRadiusPx is the minimum on-screen click radius for small bodies
const pickRadiusPx = 8.0

// KeyBindings maps each control to the keys that hold it down
type KeyBindings map[sim.Control][]ebiten.Key

// DefaultKeyBindings returns WASD plus arrows, with Space for boost
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		sim.ControlForward:   {ebiten.KeyW, ebiten.KeyArrowUp},
		sim.ControlReverse:   {ebiten.KeyS, ebiten.KeyArrowDown},
		sim.ControlTurnLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
		sim.ControlTurnRight: {ebiten.KeyD, ebiten.KeyArrowRight},
		sim.ControlBoost:     {ebiten.KeySpace},
	}
}

// KeyboardInput copies held keys into the simulation's input state once per frame
type KeyboardInput struct {
	bindings  KeyBindings
	isPressed func(ebiten.Key) bool
}

// NewKeyboardInput creates keyboard input with the given bindings
func NewKeyboardInput(bindings KeyBindings) *KeyboardInput {
	return &KeyboardInput{
		bindings:  bindings,
		isPressed: ebiten.IsKeyPressed,
	}
}

// Poll sets every bound control from the current keyboard state
func (k *KeyboardInput) Poll(state *sim.State) {
	for _, c := range sim.Controls() {
		down := false
		for _, key := range k.bindings[c] {
			if k.isPressed(key) {
				down = true
				break
			}
		}
		state.SetControl(c, down)
	}
}

// PointerInput turns a left click on a body into a target lock
type PointerInput struct{}

// Poll returns the body selected this frame, or nil
func (PointerInput) Poll(state *sim.State, camera *Camera) *sim.Body {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	mx, my := ebiten.CursorPosition()
	wx, wy := camera.ScreenToWorld(float64(mx), float64(my))

	b := pickBody(state.Bodies, wx, wy, camera.Zoom)
	if b == nil {
		return nil
	}
	if err := state.SelectTarget(b); err != nil {
		return nil
	}
	return b
}

// pickBody returns the closest body whose disc contains (wx, wy).
// Discs smaller than pickRadiusPx on screen are widened to it.
func pickBody(reg *sim.Registry, wx, wy, zoom float64) *sim.Body {
	var picked *sim.Body
	best := math.Inf(1)
	for _, b := range reg.Bodies() {
		d := math.Hypot(b.Position.X-wx, b.Position.Y-wy)
		reach := math.Max(b.Radius(), pickRadiusPx/zoom)
		if d <= reach && d < best {
			best = d
			picked = b
		}
	}
	return picked
}
