package metrics

import "time"

// FrameRate estimates frames per second from frame timestamps with an
// exponentially weighted moving average of the interval.
type FrameRate struct {
	alpha    float64
	interval float64 // seconds
	last     time.Duration
	seen     bool
}

func NewFrameRate() *FrameRate {
	return &FrameRate{alpha: 0.1}
}

// Tick records a frame at the host timestamp now.
func (f *FrameRate) Tick(now time.Duration) {
	if !f.seen {
		f.last = now
		f.seen = true
		return
	}
	dt := (now - f.last).Seconds()
	f.last = now
	if dt <= 0 {
		return
	}
	if f.interval == 0 {
		f.interval = dt
		return
	}
	f.interval += f.alpha * (dt - f.interval)
}

func (f *FrameRate) FPS() float64 {
	if f.interval == 0 {
		return 0
	}
	return 1 / f.interval
}

func (f *FrameRate) Reset() {
	*f = FrameRate{alpha: f.alpha}
}

// Series is a fixed-capacity ring of samples for sparklines.
type Series struct {
	buf  []float64
	head int
	full bool
}

func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{buf: make([]float64, capacity)}
}

func (s *Series) Push(v float64) {
	s.buf[s.head] = v
	s.head = (s.head + 1) % len(s.buf)
	if s.head == 0 {
		s.full = true
	}
}

func (s *Series) Len() int {
	if s.full {
		return len(s.buf)
	}
	return s.head
}

// Values returns the samples oldest first.
func (s *Series) Values() []float64 {
	if !s.full {
		return append([]float64(nil), s.buf[:s.head]...)
	}
	out := make([]float64, 0, len(s.buf))
	out = append(out, s.buf[s.head:]...)
	return append(out, s.buf[:s.head]...)
}

func (s *Series) Last() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.buf[(s.head-1+len(s.buf))%len(s.buf)]
}

func (s *Series) Clear() {
	s.head = 0
	s.full = false
}
