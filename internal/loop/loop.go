package loop

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/sim"
)

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Cadence selects how host frames map to simulation steps.
type Cadence int

const (
	// Frame runs exactly one step per display frame.
	Frame Cadence = iota
	// Fixed runs steps of FixedStep against the host clock.
	Fixed
)

const (
	FixedStep   = time.Second / 60
	MaxSubsteps = 4
)

// Overlay is painted over the whole surface before every frame's step so
// the previous frame fades into a trail.
var Overlay = color.NRGBA{R: 17, G: 24, B: 39, A: 38}

func (c Cadence) String() string {
	if c == Fixed {
		return "fixed"
	}
	return "frame"
}

func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "frame":
		return Frame, nil
	case "fixed":
		return Fixed, nil
	}
	return Frame, fmt.Errorf("%w: %q", dynamo.ErrUnknownCadence, s)
}

type Option func(*Loop)

func WithCadence(c Cadence) Option {
	return func(l *Loop) { l.cadence = c }
}

func WithStepper(s *sim.Stepper) Option {
	return func(l *Loop) { l.stepper = s }
}

// WithFrameHook registers fn to run at the start of every frame, painted or not.
func WithFrameHook(fn func(now time.Duration)) Option {
	return func(l *Loop) { l.hook = fn }
}

// Loop owns a World and drives it from a Scheduler. All methods must be
// called from the goroutine that pumps the scheduler.
type Loop struct {
	world   *sim.World
	stepper *sim.Stepper
	sched   Scheduler
	surface dynamo.Surface

	state   State
	pending FrameID
	cadence Cadence
	hook    func(now time.Duration)

	acc     time.Duration
	last    time.Duration
	clocked bool
}

func New(w *sim.World, sched Scheduler, opts ...Option) *Loop {
	l := &Loop{
		world: w,
		sched: sched,
		state: Idle,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.stepper == nil {
		l.stepper = sim.NewStepper()
	}
	return l
}

func (l *Loop) State() State          { return l.state }
func (l *Loop) World() *sim.World     { return l.world }
func (l *Loop) Stepper() *sim.Stepper { return l.stepper }
func (l *Loop) Cadence() Cadence      { return l.cadence }

// Attach sets the surface painted by future frames. A nil surface turns
// frames into no-ops that keep the loop scheduled.
func (l *Loop) Attach(s dynamo.Surface) {
	l.surface = s
}

// Start moves the loop to Running and requests a frame. It is a no-op when
// already running.
func (l *Loop) Start() {
	if l.state == Running {
		return
	}
	l.state = Running
	l.clocked = false
	l.acc = 0
	l.pending = l.sched.RequestFrame(l.frame)
}

// Stop cancels the pending frame and moves the loop to Stopped.
func (l *Loop) Stop() {
	if l.pending != 0 {
		l.sched.CancelFrame(l.pending)
		l.pending = 0
	}
	l.state = Stopped
}

// Teardown stops the loop and detaches the surface.
func (l *Loop) Teardown() {
	l.Stop()
	l.surface = nil
}

// Configure restarts the loop under s: the pending frame is cancelled, the
// world is refilled to s.Count and the loop resumes. Out-of-range values are
// clamped.
func (l *Loop) Configure(s dynamo.Settings) {
	l.Stop()
	l.world.SetSettings(s.Clamp())
	l.world.Reset()
	l.stepper.ResetMetrics()
	l.Start()
}

func (l *Loop) Resize(width, height float64) {
	l.world.Resize(width, height)
}

func (l *Loop) PointerMove(x, y float64) { l.world.MovePointer(x, y) }
func (l *Loop) PointerEnd()              { l.world.ReleasePointer() }

// Click spawns a cluster at (x, y) and returns how many particles it added.
func (l *Loop) Click(x, y float64) int {
	return l.world.Spawn(x, y)
}

// Reset refills the world to its configured count without stopping.
func (l *Loop) Reset() {
	l.world.Reset()
	l.stepper.ResetMetrics()
}

func (l *Loop) frame(now time.Duration) {
	l.pending = 0
	if l.state != Running {
		return
	}
	if l.hook != nil {
		l.hook(now)
	}
	if l.surface != nil {
		w, h := l.surface.Size()
		l.surface.FillRect(0, 0, w, h, Overlay)
		l.advance(now)
	}
	// a hook or observer may have restarted the loop
	if l.state == Running && l.pending == 0 {
		l.pending = l.sched.RequestFrame(l.frame)
	}
}

func (l *Loop) advance(now time.Duration) {
	if l.cadence == Frame {
		l.stepper.Step(l.world, l.surface)
		return
	}

	if !l.clocked {
		l.clocked = true
		l.last = now
		l.acc = FixedStep
	} else {
		if dt := now - l.last; dt > 0 {
			l.acc += dt
		}
		l.last = now
	}

	n := 0
	for l.acc >= FixedStep && n < MaxSubsteps {
		l.acc -= FixedStep
		n++
	}
	// drop the backlog instead of spiralling
	if l.acc >= FixedStep {
		l.acc %= FixedStep
	}

	if n == 0 {
		l.stepper.Draw(l.world, l.surface)
		return
	}
	for i := 0; i < n; i++ {
		var surf dynamo.Surface
		if i == n-1 {
			surf = l.surface
		}
		l.stepper.Step(l.world, surf)
	}
}
