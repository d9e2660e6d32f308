// Package game hosts the particle field in an ebiten window.
package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/control"
	"github.com/san-kum/playground/internal/loop"
	"github.com/san-kum/playground/internal/metrics"
	"github.com/san-kum/playground/internal/sim"
)

var (
	background = color.NRGBA{R: 17, G: 24, B: 39, A: 255}
	accent     = color.NRGBA{R: 0, G: 255, B: 255, A: 255}
	dim        = color.NRGBA{R: 120, G: 130, B: 150, A: 255}
	halo       = color.NRGBA{R: 0, G: 255, B: 255, A: 40}
)

// Game implements ebiten.Game around a loop.Loop. Frames are pumped from
// Draw so that one display refresh is one step.
type Game struct {
	loop      *loop.Loop
	queue     *loop.FrameQueue
	manual    *control.Manual
	panel     control.Panel
	showPanel bool

	trail *surface
	w, h  int
	start time.Time

	fps       *metrics.FrameRate
	energy    *metrics.Energy
	telemetry *metrics.Series

	spring       harmonica.Spring
	haloR, haloV float64

	touches []ebiten.TouchID
}

func NewGame(cfg *config.Config, cadence loop.Cadence) *Game {
	g := &Game{
		queue:     loop.NewFrameQueue(),
		showPanel: true,
		w:         cfg.Width,
		h:         cfg.Height,
		start:     time.Now(),
		fps:       metrics.NewFrameRate(),
		energy:    metrics.NewEnergy(),
		telemetry: metrics.NewSeries(200),
		spring:    harmonica.NewSpring(harmonica.FPS(cfg.FPS), 6.0, 0.6),
	}

	stepper := sim.NewStepper()
	stepper.AddMetric(g.energy)

	world := sim.NewWorld(cfg.Bounds(), cfg.Settings().Clamp(), cfg.Seed)
	g.loop = loop.New(world, g.queue,
		loop.WithCadence(cadence),
		loop.WithStepper(stepper),
		loop.WithFrameHook(func(now time.Duration) {
			g.fps.Tick(now)
			g.telemetry.Push(g.energy.Value())
		}),
	)
	g.manual = control.NewManual(g.loop)
	g.loop.Start()
	return g
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(cfg *config.Config, cadence loop.Cadence) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("playground")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FPS)

	g := NewGame(cfg, cadence)
	defer g.loop.Teardown()

	log.Printf("window: %d particles, influence %.0f, cadence %s", cfg.Count, cfg.PointerRadius, cadence)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleKeys()

	mx, my := ebiten.CursorPosition()
	s := control.Sample{
		X:       float64(mx),
		Y:       float64(my),
		Inside:  ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < g.w && my < g.h,
		Clicked: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		tx, ty := ebiten.TouchPosition(g.touches[0])
		s.X, s.Y, s.Inside = float64(tx), float64(ty), true
		s.Clicked = s.Clicked || len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
	}
	g.manual.Sample(g.routeClick(s))

	target := 0.0
	if g.loop.World().Pointer().Active {
		target = g.loop.World().Settings().PointerRadius
	}
	g.haloR, g.haloV = g.spring.Update(g.haloR, g.haloV, target)
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.loop.State() == loop.Running {
			g.loop.Stop()
		} else {
			g.loop.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.loop.Reset()
		g.telemetry.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showPanel = !g.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s := g.loop.World().Settings()
		s.Links = !s.Links
		g.loop.Configure(s)
		g.clearTrail()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) || inpututil.IsKeyJustPressed(ebiten.KeyJ) {
		g.panel.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) || inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.panel.Prev()
	}

	big := ebiten.IsKeyPressed(ebiten.KeyShift)
	dir := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		dir = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		dir = -1
	}
	if dir != 0 {
		g.loop.Configure(g.panel.Adjust(g.loop.World().Settings(), dir, big))
		g.telemetry.Clear()
		g.clearTrail()
	}
}

func (g *Game) clearTrail() {
	if g.trail != nil {
		g.trail.img.Fill(background)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ensureTrail()
	g.queue.Pump(time.Since(g.start))
	screen.DrawImage(g.trail.img, nil)

	if g.haloR >= 1 {
		p := g.loop.World().Pointer()
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), float32(g.haloR), 1, halo, true)
	}
	g.drawHUD(screen)
}

// Layout follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return g.w, g.h
}

// ensureTrail replaces the trail image when the window size changed and
// updates the world's bounds without moving particles.
func (g *Game) ensureTrail() {
	if g.trail != nil {
		if b := g.trail.img.Bounds(); b.Dx() == g.w && b.Dy() == g.h {
			return
		}
	}
	img := ebiten.NewImage(g.w, g.h)
	img.Fill(background)
	if g.trail != nil {
		img.DrawImage(g.trail.img, nil)
		g.trail.img.Deallocate()
	}
	g.trail = &surface{img: img}
	g.loop.Attach(g.trail)
	g.loop.Resize(float64(g.w), float64(g.h))
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := g.loop.World()
	status := "running"
	if g.loop.State() != loop.Running {
		status = "paused"
	}
	text.Draw(screen, fmt.Sprintf("playground :: %d particles :: %s", w.Len(), status), basicfont.Face7x13, 12, 20, accent)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f FPS (tps %.0f)", g.fps.FPS(), ebiten.ActualTPS()), 12, g.h-40)
	text.Draw(screen, "click spawn  space pause  r reset  l links  tab panel  q quit", basicfont.Face7x13, 12, g.h-8, dim)

	g.drawTelemetry(screen, 12, g.h-110, 300, 50)

	if !g.showPanel {
		return
	}
	vector.DrawFilledRect(screen, panelX, panelY, panelW, panelH, color.NRGBA{R: 31, G: 41, B: 55, A: 220}, false)
	s := w.Settings()
	y := panelY + 20
	for _, f := range control.Fields() {
		prefix, col := "  ", dim
		if f == g.panel.Selected() {
			prefix, col = "> ", accent
		}
		text.Draw(screen, fmt.Sprintf("%s%-10s %s", prefix, f, control.Value(f, s)), basicfont.Face7x13, panelX+10, y, col)
		y += 20
	}
}

const (
	panelX, panelY = 12, 32
	panelW, panelH = 220, 80
)

// routeClick drops a click that lands on the panel, wherever the sample
// came from.
func (g *Game) routeClick(s control.Sample) control.Sample {
	if s.Clicked && g.overPanel(int(s.X), int(s.Y)) {
		s.Clicked = false
	}
	return s
}

func (g *Game) overPanel(x, y int) bool {
	return g.showPanel && x >= panelX && x < panelX+panelW && y >= panelY && y < panelY+panelH
}

func (g *Game) drawTelemetry(screen *ebiten.Image, x, y, width, height int) {
	values := g.telemetry.Values()
	if len(values) < 2 {
		return
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	px := func(i int) float32 { return float32(x) + float32(i)/float32(len(values))*float32(width) }
	py := func(v float64) float32 { return float32(y+height) - float32((v-lo)/(hi-lo))*float32(height) }
	for i := 1; i < len(values); i++ {
		vector.StrokeLine(screen, px(i-1), py(values[i-1]), px(i), py(values[i]), 1, accent, true)
	}
}
