package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DebugState holds overlay toggles
type DebugState struct {
	ShowBands bool // F1: collision, orbit and notice rings around every body
	HideTrail bool // F2: hide the spacecraft trail
	HideHUD   bool // F3: hide the HUD and info panel
}

// HandleKeys flips toggles on key press
func (d *DebugState) HandleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		d.ShowBands = !d.ShowBands
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		d.HideTrail = !d.HideTrail
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		d.HideHUD = !d.HideHUD
	}
}
