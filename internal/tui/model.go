// Package tui hosts the particle field in a terminal. The trail buffer is a
// braille canvas, so every character cell shows 2x4 dots.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/playground/internal/config"
	"github.com/san-kum/playground/internal/control"
	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/loop"
	"github.com/san-kum/playground/internal/metrics"
	"github.com/san-kum/playground/internal/sim"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

// Screen layout, in character cells.
const (
	canvasLeft = 3
	canvasTop  = 2
	footerRows = 10
	minCols    = 20
	minRows    = 6

	graphWidth  = 48
	graphHeight = 3
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	loop   *loop.Loop
	queue  *loop.FrameQueue
	canvas *Canvas
	manual *control.Manual
	panel  control.Panel

	showPanel bool
	start     time.Time

	fps       *metrics.FrameRate
	energy    *metrics.Energy
	telemetry *metrics.Series

	// pointer halo radius, in dots
	spring       harmonica.Spring
	haloR, haloV float64

	width  int
	height int
}

func newModel(cfg *config.Config, cadence loop.Cadence) model {
	m := model{
		queue:     loop.NewFrameQueue(),
		showPanel: true,
		start:     time.Now(),
		fps:       metrics.NewFrameRate(),
		energy:    metrics.NewEnergy(),
		telemetry: metrics.NewSeries(graphWidth),
		spring:    harmonica.NewSpring(harmonica.FPS(60), 6.0, 0.6),
		width:     80,
		height:    24,
	}
	m.canvas = NewCanvas(m.canvasSize())

	stepper := sim.NewStepper()
	stepper.AddMetric(m.energy)

	w, h := m.canvas.Size()
	world := sim.NewWorld(dynamo.Bounds{Width: w, Height: h}, cfg.Settings().Clamp(), cfg.Seed)

	fps, energy, telemetry := m.fps, m.energy, m.telemetry
	m.loop = loop.New(world, m.queue,
		loop.WithCadence(cadence),
		loop.WithStepper(stepper),
		loop.WithFrameHook(func(now time.Duration) {
			fps.Tick(now)
			telemetry.Push(energy.Value())
		}),
	)
	m.manual = control.NewManual(m.loop)
	m.loop.Attach(m.canvas)
	m.loop.Start()
	return m
}

// Run takes over the terminal until q is pressed.
func Run(cfg *config.Config, cadence loop.Cadence) error {
	m := newModel(cfg, cadence)
	defer m.loop.Teardown()

	log.Printf("tui: %d particles, influence %.0f, cadence %s", cfg.Count, cfg.PointerRadius, cadence)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

func (m model) canvasSize() (int, int) {
	return max(m.width-2*canvasLeft, minCols), max(m.height-canvasTop-footerRows, minRows)
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(m.canvasSize())
		m.loop.Resize(m.canvas.Size())
		return m, nil
	case tea.MouseMsg:
		m.manual.Sample(m.sample(msg))
		return m, nil
	case tea.BlurMsg:
		m.manual.Sample(control.Sample{})
		return m, nil
	case tickMsg:
		m.queue.Pump(time.Time(msg).Sub(m.start))
		target := 0.0
		if p := m.loop.World().Pointer(); p.Active {
			target = m.loop.World().Settings().PointerRadius / Scale
		}
		m.haloR, m.haloV = m.spring.Update(m.haloR, m.haloV, target)
		return m, tick()
	}
	return m, nil
}

// sample maps a terminal mouse event onto the canvas. The pointer sits at the
// centre of the cell under the mouse.
func (m model) sample(msg tea.MouseMsg) control.Sample {
	col, row := msg.X-canvasLeft, msg.Y-canvasTop
	inside := col >= 0 && row >= 0 && col < m.canvas.Width && row < m.canvas.Height
	return control.Sample{
		X:       (float64(col) + 0.5) * 2 * Scale,
		Y:       (float64(row) + 0.5) * 4 * Scale,
		Inside:  inside,
		Clicked: msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft,
	}
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.loop.State() == loop.Running {
			m.loop.Stop()
		} else {
			m.loop.Start()
		}
	case "r":
		m.loop.Reset()
		m.telemetry.Clear()
	case "l":
		s := m.loop.World().Settings()
		s.Links = !s.Links
		m.configure(s)
	case "tab":
		m.showPanel = !m.showPanel
	case "up", "k":
		m.panel.Prev()
	case "down", "j":
		m.panel.Next()
	case "right":
		m.configure(m.panel.Adjust(m.loop.World().Settings(), 1, false))
	case "left":
		m.configure(m.panel.Adjust(m.loop.World().Settings(), -1, false))
	case "shift+right":
		m.configure(m.panel.Adjust(m.loop.World().Settings(), 1, true))
	case "shift+left":
		m.configure(m.panel.Adjust(m.loop.World().Settings(), -1, true))
	}
	return m, nil
}

func (m model) configure(s dynamo.Settings) {
	m.loop.Configure(s)
	m.telemetry.Clear()
	m.canvas.Clear()
}

func (m model) View() string {
	var b strings.Builder
	w := m.loop.World()

	statusIcon := green.Render("●")
	statusText := green.Render("running")
	if m.loop.State() != loop.Running {
		statusIcon = yellow.Render("○")
		statusText = yellow.Render("paused")
	}
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s  %s  %s\n",
		statusIcon, cyan.Render("playground"), statusText,
		dim.Render(fmt.Sprintf("%d particles", w.Len())),
		dim.Render(fmt.Sprintf("%.0ffps", m.fps.FPS())),
		dimmer.Render(fmt.Sprintf("%s cadence", m.loop.Cadence()))))

	for _, line := range strings.Split(m.canvas.String(), "\n") {
		b.WriteString("   " + line + "\n")
	}

	b.WriteString("\n")
	if values := m.telemetry.Values(); len(values) > 1 {
		graph := asciigraph.Plot(values,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Offset(3),
			asciigraph.Precision(1),
			asciigraph.Caption(fmt.Sprintf("kinetic energy (peak %.1f)", m.energy.Peak())),
		)
		b.WriteString(dim.Render(graph) + "\n")
	}

	if m.showPanel {
		b.WriteString("\n" + m.viewPanel() + "\n")
	}
	if m.manual.Active() && m.haloR >= 1 {
		x, y := m.manual.Position()
		b.WriteString(dimmer.Render(fmt.Sprintf("   pointer %.0f,%.0f  reach %.0f dots", x, y, m.haloR)) + "\n")
	}

	b.WriteString("\n" + dim.Render("   click spawn  space pause  r reset  l links  ↑↓ select  ←→ adjust  tab panel  q quit") + "\n")
	return b.String()
}

func (m model) viewPanel() string {
	s := m.loop.World().Settings()
	var parts []string
	for _, f := range control.Fields() {
		if f == m.panel.Selected() {
			parts = append(parts, cyan.Render("▸ ")+white.Render(f.String()+" ")+magenta.Render(control.Value(f, s)))
		} else {
			parts = append(parts, "  "+dim.Render(f.String()+" "+control.Value(f, s)))
		}
	}
	return "   " + strings.Join(parts, "   ")
}
