package tui

import (
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/control"
	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/loop"
)

var opaque = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestCanvasSize(t *testing.T) {
	c := NewCanvas(10, 5)
	w, h := c.Size()
	if w != 10*2*Scale || h != 5*4*Scale {
		t.Errorf("size = %vx%v", w, h)
	}

	c = NewCanvas(0, -3)
	if c.Width != 1 || c.Height != 1 {
		t.Errorf("degenerate canvas = %dx%d, want 1x1", c.Width, c.Height)
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(4*Scale+2, 4*Scale+2, 1, opaque)

	if v := c.Intensity(4, 4); v != 1 {
		t.Errorf("intensity = %v, want 1", v)
	}
	r, _ := c.Cell(2, 1)
	if r != 0x2800|pixelMap[0][0] {
		t.Errorf("cell = %U", r)
	}
	if r, _ := c.Cell(0, 0); r != 0x2800 {
		t.Errorf("untouched cell = %U, want blank", r)
	}
}

func TestCanvasLargeCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(40, 40, 3*Scale, opaque)

	if c.Intensity(10, 10) != 1 {
		t.Error("centre dot not lit")
	}
	if c.Intensity(10, 14) != 0 {
		t.Error("dot outside radius lit")
	}
}

func TestCanvasOverlayFades(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(2, 2, 1, opaque)
	w, h := c.Size()

	c.FillRect(0, 0, w, h, loop.Overlay)
	want := 1 - float64(loop.Overlay.A)/255
	if v := c.Intensity(0, 0); math.Abs(v-want) > 1e-9 {
		t.Errorf("after one overlay = %v, want %v", v, want)
	}

	for i := 0; i < 12; i++ {
		c.FillRect(0, 0, w, h, loop.Overlay)
	}
	if r, _ := c.Cell(0, 0); r == 0x2800 {
		t.Error("trail vanished too early")
	}

	for i := 0; i < 10; i++ {
		c.FillRect(0, 0, w, h, loop.Overlay)
	}
	if r, _ := c.Cell(0, 0); r != 0x2800 {
		t.Errorf("trail still visible: %U", r)
	}
}

func TestCanvasOpaqueRectClears(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(2, 2, 1, opaque)
	c.FillRect(0, 0, 8, 8, color.NRGBA{R: 17, G: 24, B: 39, A: 255})
	if v := c.Intensity(0, 0); v != 0 {
		t.Errorf("intensity = %v, want 0", v)
	}
}

func TestCanvasStrokeLine(t *testing.T) {
	c := NewCanvas(5, 1)
	c.StrokeLine(1, 1, 9*Scale+1, 1, 1, opaque)
	for x := 0; x < 10; x++ {
		if c.Intensity(x, 0) != 1 {
			t.Errorf("dot %d not lit", x)
		}
	}
	if c.Intensity(0, 1) != 0 {
		t.Error("line leaked into the next row")
	}
}

func TestCanvasFaintLinkStaysDark(t *testing.T) {
	c := NewCanvas(5, 1)
	c.StrokeLine(1, 1, 9*Scale+1, 1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 10})
	if r, _ := c.Cell(0, 0); r != 0x2800 {
		t.Errorf("faint link drawn: %U", r)
	}
}

func TestCanvasFillRadial(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillRadial(40, 40, 3*Scale, []dynamo.GradientStop{
		{Offset: 0, Color: color.NRGBA{R: 255, A: 255}},
		{Offset: 1, Color: color.NRGBA{R: 255}},
	})
	if c.Intensity(10, 10) == 0 {
		t.Error("glow centre dark")
	}
}

func TestCanvasResizeKeepsDots(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillCircle(2, 2, 1, opaque)
	c.Resize(8, 4)
	if c.Width != 8 || c.Height != 4 {
		t.Fatalf("size = %dx%d", c.Width, c.Height)
	}
	if c.Intensity(0, 0) != 1 {
		t.Error("dot lost on resize")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(6, 3)
	c.FillCircle(2, 2, 1, opaque)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if !strings.ContainsRune(lines[0], 0x2801) {
		t.Errorf("first line %q missing lit cell", lines[0])
	}
}

func newTestModel(t *testing.T) model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	m := newModel(cfg, loop.Frame)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(model)
}

func press(m model, key tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t)
	if m.canvas.Width != 100-2*canvasLeft || m.canvas.Height != 40-canvasTop-footerRows {
		t.Errorf("canvas = %dx%d", m.canvas.Width, m.canvas.Height)
	}
	b := m.loop.World().Bounds()
	w, h := m.canvas.Size()
	if b.Width != w || b.Height != h {
		t.Errorf("bounds = %+v, want %vx%v", b, w, h)
	}
}

func TestModelTickSteps(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tickMsg(m.start.Add(16 * time.Millisecond)))
	m = next.(model)
	if cmd == nil {
		t.Error("tick not rescheduled")
	}
	if got := m.loop.Stepper().Steps(); got != 1 {
		t.Errorf("steps = %d, want 1", got)
	}
	if m.telemetry.Len() != 1 {
		t.Errorf("telemetry = %d samples, want 1", m.telemetry.Len())
	}
}

func TestModelPause(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.loop.State() != loop.Stopped {
		t.Fatalf("state = %v, want stopped", m.loop.State())
	}

	next, _ := m.Update(tickMsg(m.start.Add(16 * time.Millisecond)))
	m = next.(model)
	if got := m.loop.Stepper().Steps(); got != 0 {
		t.Errorf("paused loop stepped %d times", got)
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("view does not show paused")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.loop.State() != loop.Running {
		t.Errorf("state = %v, want running", m.loop.State())
	}
}

func TestModelMouse(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.MouseMsg{X: canvasLeft + 2, Y: canvasTop + 1, Action: tea.MouseActionMotion})
	m = next.(model)

	p := m.loop.World().Pointer()
	if !p.Active {
		t.Fatal("pointer not active")
	}
	if p.X != 2.5*2*Scale || p.Y != 1.5*4*Scale {
		t.Errorf("pointer = %v,%v", p.X, p.Y)
	}

	next, _ = m.Update(tea.BlurMsg{})
	m = next.(model)
	if m.loop.World().Pointer().Active {
		t.Error("pointer still active after blur")
	}

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	m = next.(model)
	if m.loop.World().Pointer().Active {
		t.Error("pointer active outside the canvas")
	}
}

func TestModelClickSpawns(t *testing.T) {
	m := newTestModel(t)
	before := m.loop.World().Len()
	next, _ := m.Update(tea.MouseMsg{
		X:      canvasLeft + 10,
		Y:      canvasTop + 5,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	m = next.(model)

	added := m.loop.World().Len() - before
	if added < 10 || added > 15 {
		t.Errorf("click added %d particles, want 10..15", added)
	}
	if m.manual.Spawned() != added {
		t.Errorf("spawned = %d, want %d", m.manual.Spawned(), added)
	}
}

func TestModelPanelKeys(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if s := m.loop.World().Settings(); s.Count != dynamo.DefaultCount+control.SliderStep {
		t.Errorf("count = %d", s.Count)
	}
	if got := m.loop.World().Len(); got != dynamo.DefaultCount+control.SliderStep {
		t.Errorf("population = %d after configure", got)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	if s := m.loop.World().Settings(); s.Count != dynamo.DefaultCount+control.SliderStep-control.SliderBigStep {
		t.Errorf("count = %d", s.Count)
	}

	m, _ = press(m, runes("j"))
	if m.panel.Selected() != control.FieldInfluence {
		t.Errorf("selected = %v", m.panel.Selected())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if r := m.loop.World().Settings().PointerRadius; r != dynamo.DefaultPointerRadius+control.SliderStep {
		t.Errorf("influence = %v", r)
	}

	m, _ = press(m, runes("l"))
	if m.loop.World().Settings().Links {
		t.Error("links still on")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showPanel {
		t.Error("panel still shown")
	}
	if m.loop.State() != loop.Running {
		t.Errorf("state = %v after configure", m.loop.State())
	}
}

func TestModelReset(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.MouseMsg{X: canvasLeft + 3, Y: canvasTop + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = press(m, runes("r"))
	if got := m.loop.World().Len(); got != dynamo.DefaultCount {
		t.Errorf("population = %d, want %d", got, dynamo.DefaultCount)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t)
	for i := 1; i <= 3; i++ {
		next, _ := m.Update(tickMsg(m.start.Add(time.Duration(i) * 16 * time.Millisecond)))
		m = next.(model)
	}
	v := m.View()
	for _, want := range []string{"playground", "150 particles", "frame cadence", "kinetic energy (peak", "influence 150px", "links on"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
