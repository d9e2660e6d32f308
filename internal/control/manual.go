package control

// Input is the part of loop.Loop that pointer devices drive.
type Input interface {
	PointerMove(x, y float64)
	PointerEnd()
	Click(x, y float64) int
}

// Sample is one frame's view of the primary pointer, in surface pixels.
type Sample struct {
	X, Y    float64
	Inside  bool
	Clicked bool
}

// Manual forwards pointer transitions to an Input. It is the "hand of god":
// whatever the user does with the mouse or a finger lands here first.
type Manual struct {
	target Input
	inside bool
	x, y   float64
	spawns int
}

func NewManual(target Input) *Manual {
	return &Manual{target: target}
}

// Sample reports s to the target. Moves are forwarded only when the position
// changed or the pointer just entered; leaving ends the pointer once.
func (m *Manual) Sample(s Sample) {
	if !s.Inside {
		if m.inside {
			m.target.PointerEnd()
			m.inside = false
		}
		return
	}

	if !m.inside || s.X != m.x || s.Y != m.y {
		m.target.PointerMove(s.X, s.Y)
	}
	m.inside = true
	m.x, m.y = s.X, s.Y

	if s.Clicked {
		m.spawns += m.target.Click(s.X, s.Y)
	}
}

// Active reports whether the pointer is currently over the surface.
func (m *Manual) Active() bool { return m.inside }

// Position is the last position seen inside the surface.
func (m *Manual) Position() (float64, float64) { return m.x, m.y }

// Spawned is the total number of particles created by clicks.
func (m *Manual) Spawned() int { return m.spawns }
