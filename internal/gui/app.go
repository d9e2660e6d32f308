package gui

import (
	"log"
	"time"

	"github.com/charmbracelet/harmonica"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/control"
	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/loop"
	"github.com/san-kum/playground/internal/metrics"
	"github.com/san-kum/playground/internal/sim"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(17, 24, 39, 255)
	ColAccent  = rl.NewColor(0, 255, 255, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(160, 170, 190, 255)
	ColTextDim = rl.NewColor(75, 85, 99, 255)
	ColPanel   = rl.NewColor(31, 41, 55, 220)
)

const telemetrySize = 200

type App struct {
	Loop      *loop.Loop
	Queue     *loop.FrameQueue
	Manual    *control.Manual
	Panel     control.Panel
	ShowPanel bool
	Font      rl.Font

	// Post-Processing
	canvas    *canvas
	TargetTex rl.RenderTexture2D

	// Metrics
	FPS       *metrics.FrameRate
	Energy    *metrics.Energy
	Telemetry *metrics.Series

	// Pointer halo
	halo         harmonica.Spring
	haloR, haloV float64

	quit bool
}

// initWindow opens a resizable window, targets fps and disables the default exit key.
func initWindow(width, height, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), "playground")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables bilinear texture filtering.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the world, loop and HUD state. The window must already be open.
func NewApp(cfg *config.Config, cadence loop.Cadence) *App {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	bounds := cfg.Bounds()
	bounds.Width, bounds.Height = float64(w), float64(h)

	app := &App{
		Queue:     loop.NewFrameQueue(),
		ShowPanel: true,
		Font:      loadFont(),
		canvas:    &canvas{w: float64(w), h: float64(h)},
		FPS:       metrics.NewFrameRate(),
		Energy:    metrics.NewEnergy(),
		Telemetry: metrics.NewSeries(telemetrySize),
		halo:      harmonica.NewSpring(harmonica.FPS(cfg.FPS), 6.0, 0.6),
	}

	stepper := sim.NewStepper()
	stepper.AddMetric(app.Energy)
	stepper.AddMetric(metrics.NewPopulation())

	world := sim.NewWorld(bounds, cfg.Settings().Clamp(), cfg.Seed)
	app.Loop = loop.New(world, app.Queue,
		loop.WithCadence(cadence),
		loop.WithStepper(stepper),
		loop.WithFrameHook(app.onFrame),
	)
	app.Manual = control.NewManual(app.Loop)

	app.TargetTex = newTrailTexture(w, h)
	app.Loop.Attach(app.canvas)
	app.Loop.Start()
	return app
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(cfg *config.Config, cadence loop.Cadence) error {
	initWindow(cfg.Width, cfg.Height, cfg.FPS)
	defer rl.CloseWindow()

	app := NewApp(cfg, cadence)
	defer app.Close()

	log.Printf("gui: %d particles, influence %.0f, cadence %s", cfg.Count, cfg.PointerRadius, cadence)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// Close tears the loop down and releases GPU resources.
func (a *App) Close() {
	a.Loop.Teardown()
	rl.UnloadRenderTexture(a.TargetTex)
	rl.UnloadFont(a.Font)
}

func newTrailTexture(w, h int) rl.RenderTexture2D {
	tex := rl.LoadRenderTexture(int32(w), int32(h))
	rl.BeginTextureMode(tex)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()
	return tex
}

func (a *App) onFrame(now time.Duration) {
	a.FPS.Tick(now)
	a.Telemetry.Push(a.Energy.Value())
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		rl.UnloadRenderTexture(a.TargetTex)
		a.TargetTex = newTrailTexture(w, h)
		a.canvas.w, a.canvas.h = float64(w), float64(h)
		a.Loop.Resize(float64(w), float64(h))
	}

	a.handleKeys()

	// Pointer: first touch wins over the mouse
	pos := rl.GetMousePosition()
	inside := rl.IsCursorOnScreen()
	clicked := rl.IsMouseButtonPressed(rl.MouseLeftButton)
	if rl.GetTouchPointCount() > 0 {
		pos = rl.GetTouchPosition(0)
		inside = true
	}
	a.Manual.Sample(control.Sample{
		X:       float64(pos.X),
		Y:       float64(pos.Y),
		Inside:  inside,
		Clicked: clicked && !a.overPanel(pos),
	})

	target := 0.0
	if a.Loop.World().Pointer().Active {
		target = a.Loop.World().Settings().PointerRadius
	}
	a.haloR, a.haloV = a.halo.Update(a.haloR, a.haloV, target)
}

func (a *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) {
		if a.Loop.State() == loop.Running {
			a.Loop.Stop()
		} else {
			a.Loop.Start()
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Loop.Reset()
		a.Telemetry.Clear()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ShowPanel = !a.ShowPanel
	}
	if rl.IsKeyPressed(rl.KeyL) {
		s := a.Loop.World().Settings()
		s.Links = !s.Links
		a.configure(s)
	}

	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Panel.Next()
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Panel.Prev()
	}

	big := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	if rl.IsKeyPressed(rl.KeyRight) {
		a.configure(a.Panel.Adjust(a.Loop.World().Settings(), +1, big))
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		a.configure(a.Panel.Adjust(a.Loop.World().Settings(), -1, big))
	}
}

// configure restarts the loop under s and wipes the trail buffer.
func (a *App) configure(s dynamo.Settings) {
	a.Loop.Configure(s)
	a.Telemetry.Clear()
	rl.BeginTextureMode(a.TargetTex)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()
}

func (a *App) Draw() {
	now := time.Duration(rl.GetTime() * float64(time.Second))

	rl.BeginTextureMode(a.TargetTex)
	a.Queue.Pump(now)
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.TargetTex.Texture.Width), -float32(a.TargetTex.Texture.Height))
	rl.DrawTextureRec(a.TargetTex.Texture, src, rl.NewVector2(0, 0), rl.White)

	a.drawHalo()
	a.DrawHUD()
	if a.ShowPanel {
		a.drawPanel()
	}

	rl.EndDrawing()
}
