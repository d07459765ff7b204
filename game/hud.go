package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r3"

	"solarflight/sim"
)

const (
	hudLineHeight = 16.0
	panelPadding  = 8.0
	panelWidth    = 360.0
)

var (
	hudFace = text.NewGoXFace(basicfont.Face7x13)

	hudTextColor  = color.RGBA{220, 220, 220, 255}
	panelColor    = color.RGBA{0, 0, 0, 170}
	panelTitleClr = color.RGBA{255, 255, 200, 255}
)

// drawHUD shows flight telemetry in the top-left and the nearby body's info panel
func drawHUD(screen *ebiten.Image, snap sim.Snapshot, visuals []bodyVisual, fps float64, zoom float64) {
	target := "none"
	if snap.Target >= 0 {
		target = snap.Bodies[snap.Target].Name
	}

	lines := []string{
		fmt.Sprintf("FPS: %.0f  Frame: %d  Zoom: %.2f", fps, snap.Frame, zoom),
		fmt.Sprintf("Speed: %.3f", r3.Norm(snap.CraftVelocity)),
		fmt.Sprintf("Heading: %.2f rad", snap.CraftRotation.Z),
		fmt.Sprintf("Autopilot target: %s", target),
	}
	drawLines(screen, lines, 10, 10, hudTextColor)

	if snap.Nearby >= 0 {
		drawInfoPanel(screen, snap.Bodies[snap.Nearby], visuals[snap.Nearby].info, snap.NearbyBand)
	}

	h := screen.Bounds().Dy()
	ebitenutil.DebugPrintAt(screen, "WASD/arrows fly  Space boost  Click lock target  F1 bands  F2 trail  Esc quit", 10, h-20)
}

// drawInfoPanel shows the nearby body's name, band and description
func drawInfoPanel(screen *ebiten.Image, b sim.BodyView, info string, band sim.Band) {
	body := wrap(info, int(panelWidth-2*panelPadding)/7)
	lines := append([]string{fmt.Sprintf("%s (%s)", b.Name, band)}, body...)

	w := float64(screen.Bounds().Dx())
	x := w - panelWidth - 10
	y := 10.0
	h := float64(len(lines))*hudLineHeight + 2*panelPadding

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(panelWidth), float32(h), panelColor, false)
	drawLines(screen, lines[:1], x+panelPadding, y+panelPadding, panelTitleClr)
	drawLines(screen, lines[1:], x+panelPadding, y+panelPadding+hudLineHeight, hudTextColor)
}

func drawLines(screen *ebiten.Image, lines []string, x, y float64, clr color.Color) {
	if len(lines) == 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = hudLineHeight
	text.Draw(screen, strings.Join(lines, "\n"), hudFace, op)
}

// wrap splits s into lines of at most width characters on word boundaries
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
