package sim

import (
	"math/rand"

	"github.com/san-kum/playground/internal/dynamo"
	"github.com/san-kum/playground/internal/particle"
)

const (
	// MaxParticles caps the population; the oldest are evicted first.
	MaxParticles = 500

	ClusterMin = 10
	ClusterMax = 15
	// ClusterSpread is the side of the square a cluster is scattered over.
	ClusterSpread = 50.0
)

// World is the live simulation context: particles in creation order, the
// pointer, the settings and the bounds. It has a single owner and is not
// safe for concurrent use.
type World struct {
	particles []particle.Particle
	pointer   dynamo.Pointer
	settings  dynamo.Settings
	bounds    dynamo.Bounds
	rng       *rand.Rand
	nextID    uint64
	links     int
}

// NewWorld creates a world filled to settings.Count.
func NewWorld(bounds dynamo.Bounds, settings dynamo.Settings, seed int64) *World {
	w := &World{
		settings: settings,
		bounds:   bounds,
		rng:      rand.New(rand.NewSource(seed)),
	}
	w.Reset()
	return w
}

// Particles returns the live collection. Callers may mutate elements in
// place but must not retain the slice across Spawn or Reset.
func (w *World) Particles() []particle.Particle { return w.particles }

func (w *World) Len() int                  { return len(w.particles) }
func (w *World) Pointer() dynamo.Pointer   { return w.pointer }
func (w *World) Settings() dynamo.Settings { return w.settings }
func (w *World) Bounds() dynamo.Bounds     { return w.bounds }

// Links is the number of interacting pairs found by the last step.
func (w *World) Links() int { return w.links }

// SetSettings replaces the settings without touching the population.
func (w *World) SetSettings(s dynamo.Settings) { w.settings = s }

// Resize changes the bounds used by future boundary checks. Particles are
// not moved; any now outside are pulled back by their next integration.
func (w *World) Resize(width, height float64) {
	w.bounds = dynamo.Bounds{Width: width, Height: height}
}

// MovePointer activates the pointer at (x, y). Non-finite coordinates are
// ignored.
func (w *World) MovePointer(x, y float64) {
	if !(dynamo.Vec2{X: x, Y: y}).IsValid() {
		return
	}
	w.pointer = dynamo.Pointer{X: x, Y: y, Active: true}
}

// ReleasePointer deactivates the pointer, keeping its last position.
func (w *World) ReleasePointer() {
	w.pointer.Active = false
}

// Reset discards every particle and recreates exactly Count of them at
// uniformly random positions inside the bounds.
func (w *World) Reset() {
	n := w.settings.Count
	w.particles = make([]particle.Particle, 0, n)
	w.links = 0
	for i := 0; i < n; i++ {
		pos := dynamo.Vec2{X: w.rng.Float64() * w.bounds.Width, Y: w.rng.Float64() * w.bounds.Height}
		w.particles = append(w.particles, w.newParticle(pos))
	}
}

// Spawn scatters a cluster of 10 to 15 particles around (x, y) and returns
// how many were created. Positions outside the bounds are allowed; the
// boundary check brings them in on the next step. A non-finite click spawns
// nothing.
func (w *World) Spawn(x, y float64) int {
	if !(dynamo.Vec2{X: x, Y: y}).IsValid() {
		return 0
	}
	n := ClusterMin + w.rng.Intn(ClusterMax-ClusterMin+1)
	for i := 0; i < n; i++ {
		pos := dynamo.Vec2{
			X: x + (w.rng.Float64()-0.5)*ClusterSpread,
			Y: y + (w.rng.Float64()-0.5)*ClusterSpread,
		}
		w.particles = append(w.particles, w.newParticle(pos))
	}
	w.truncate()
	return n
}

// Add appends p, assigning it the next ID, and applies the population cap.
func (w *World) Add(p particle.Particle) {
	p.ID = w.nextID
	w.nextID++
	w.particles = append(w.particles, p)
	w.truncate()
}

func (w *World) newParticle(pos dynamo.Vec2) particle.Particle {
	p := particle.New(w.nextID, pos, w.rng)
	w.nextID++
	return p
}

// truncate keeps the MaxParticles most recently created particles.
func (w *World) truncate() {
	if over := len(w.particles) - MaxParticles; over > 0 {
		w.particles = w.particles[over:]
	}
}
