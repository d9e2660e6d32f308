// Package field provides the force laws acting on particles.
//
// Both laws are pure functions of positions:
//
//   - [Pairwise]: symmetric, distance-gated at [InteractionRadius]; repulsive
//     inside half the radius and attractive beyond it
//   - [Pointer]: purely repulsive, linear falloff to the pointer radius
//
// Neither law reads a particle's mass. Forces are velocity impulses applied
// once per frame.
package field
