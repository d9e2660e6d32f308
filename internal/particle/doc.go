// Package particle implements the single glowing body of the field.
//
// A [Particle] owns its integration step (move, bounce, friction), accepts
// forces as direct velocity impulses and paints itself as a soft radial glow
// with a brighter core. Colours come from the fixed [Palette].
package particle
