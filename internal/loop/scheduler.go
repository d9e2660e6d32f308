package loop

import "time"

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// Scheduler is the host's refresh-synchronised scheduling primitive.
// Callbacks receive the host timestamp of the frame they run in.
type Scheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func(now time.Duration)
}

// FrameQueue is a Scheduler that hosts pump once per display refresh.
// Requests made while a pump is running are deferred to the next pump.
type FrameQueue struct {
	next    FrameID
	pending []*frameRequest
	running []*frameRequest
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn func(now time.Duration)) FrameID {
	q.next++
	q.pending = append(q.pending, &frameRequest{id: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a pending request. Unknown or already-run IDs are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i, r := range q.pending {
		if r.id == id {
			r.fn = nil
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for _, r := range q.running {
		if r.id == id {
			r.fn = nil
			return
		}
	}
}

// Pump runs every request pending at the time of the call and returns how
// many ran.
func (q *FrameQueue) Pump(now time.Duration) int {
	batch := q.pending
	q.pending = nil
	q.running = batch
	defer func() { q.running = nil }()

	ran := 0
	for _, r := range batch {
		// cancelled by an earlier callback in this batch
		if r.fn == nil {
			continue
		}
		fn := r.fn
		r.fn = nil
		fn(now)
		ran++
	}
	return ran
}

func (q *FrameQueue) Pending() int {
	return len(q.pending)
}
