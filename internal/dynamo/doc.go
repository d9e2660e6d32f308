// Package dynamo provides the primitives shared by the particle field.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Vec2]: 2D vector used for positions, velocities and forces
//   - [Bounds]: the drawable extent particles are confined to
//   - [Pointer]: last known pointer location and whether it is engaged
//   - [Settings]: the user-tunable knobs (count, pointer radius, links)
//   - [Surface]: the narrow drawing interface hosts implement
//
// # Example
//
//	w := sim.NewWorld(dynamo.Bounds{Width: 800, Height: 600}, dynamo.DefaultSettings(), 1)
//	l := loop.New(w, loop.NewFrameQueue())
//	l.Attach(raster.New(800, 600))
//	l.Start()
//
// # Thread Safety
//
// Nothing in this module locks. The world, the loop and the surface are owned
// by the host's render thread; input handlers must run on that same thread.
package dynamo
