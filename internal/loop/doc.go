// Package loop drives a sim.World from a host's frame scheduler.
//
// A Loop moves through Idle, Running and Stopped. While running, every frame
// paints a translucent Overlay over the attached surface and then steps the
// world, which leaves fading trails behind moving particles. Hosts own a
// FrameQueue and pump it once per display refresh:
//
//	q := loop.NewFrameQueue()
//	l := loop.New(world, q)
//	l.Attach(surface)
//	l.Start()
//	for running {
//		q.Pump(elapsed)
//	}
//
// Changing settings through Configure cancels the pending frame, refills the
// world and resumes. Loops are not safe for concurrent use; input handlers
// must run on the goroutine that pumps the queue.
package loop
