package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/playground/internal/control"
	"github.com/san-kum/playground/internal/loop"
)

const (
	panelX, panelY = 20, 70
	panelW, panelH = 260, 130
)

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawHUD() {
	sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
	w := a.Loop.World()

	a.drawText("playground", 20, 20, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %d particles", w.Len()), 170, 24, 16, ColText)

	status := "RUNNING"
	col := ColAccent
	if a.Loop.State() != loop.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, sw-110, 20, 16, col)

	a.DrawTelemetry(20, sh-100, 320, 50)

	a.drawText(fmt.Sprintf("%.0f FPS", a.FPS.FPS()), 20, sh-30, 14, ColTextDim)
	a.drawText("[CLICK] SPAWN  [SPACE] PAUSE  [R] RESET  [L] LINKS  [TAB] PANEL  [Q] QUIT", sw-640, sh-30, 14, ColTextDim)
}

// DrawTelemetry plots the kinetic energy history as a line strip.
func (a *App) DrawTelemetry(rectX, rectY, width, height int) {
	values := a.Telemetry.Values()
	if len(values) < 2 {
		return
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(values))
	for i, val := range values {
		px := float32(rectX) + (float32(i)/float32(len(values)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2e", values[len(values)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawPanel() {
	rl.DrawRectangleRounded(rl.NewRectangle(panelX, panelY, panelW, panelH), 0.1, 6, ColPanel)

	s := a.Loop.World().Settings()
	y := panelY + 14
	for _, f := range control.Fields() {
		line := fmt.Sprintf("  %-10s %s", f, control.Value(f, s))
		col := ColText
		if f == a.Panel.Selected() {
			line = fmt.Sprintf("> %-10s %s", f, control.Value(f, s))
			col = ColSelect
		}
		a.drawText(line, panelX+12, y, 18, col)
		y += 28
	}
	a.drawText("UP/DOWN: SELECT  LEFT/RIGHT: ADJUST", panelX+12, panelY+panelH-22, 12, ColTextDim)
}

// overPanel reports whether p lies on the settings panel, where clicks do
// not spawn particles.
func (a *App) overPanel(p rl.Vector2) bool {
	if !a.ShowPanel {
		return false
	}
	return rl.CheckCollisionPointRec(p, rl.NewRectangle(panelX, panelY, panelW, panelH))
}

// drawHalo rings the pointer with its influence radius, eased by a spring so
// it grows in when the pointer arrives and shrinks away when it leaves.
func (a *App) drawHalo() {
	if a.haloR < 1 {
		return
	}
	x, y := a.Manual.Position()
	p := a.Loop.World().Pointer()
	if p.Active {
		x, y = p.X, p.Y
	}
	rl.DrawCircleLines(int32(x), int32(y), float32(a.haloR), rl.NewColor(0, 255, 255, 40))
}
