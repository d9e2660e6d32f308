// Package control turns host input into loop calls.
//
// Hosts poll their input devices once per frame and hand the result to a
// [Manual], which reports only the transitions the loop cares about:
//
//   - pointer moved while inside the surface: PointerMove
//   - pointer left the surface or the touch ended: PointerEnd
//   - primary button or tap: Click
//
// A [Panel] is the settings editor shared by every host. It selects one of
// the three sliders and returns adjusted, clamped settings for the host to
// pass to Loop.Configure.
//
// # Usage
//
//	m := control.NewManual(l)
//	// every frame
//	m.Sample(control.Sample{X: x, Y: y, Inside: inside, Clicked: pressed})
//
//	var p control.Panel
//	l.Configure(p.Adjust(l.World().Settings(), +1, false))
package control
