package plot

import "time"

// Clock supplies time readings. Readings must carry a monotonic component,
// as time.Now does, so elapsed-time checks ignore wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Pacer tracks the last completed redraw and decides whether the next one
// may proceed.
type Pacer struct {
	clock    Clock
	interval time.Duration
	last     time.Time
}

func NewPacer(clock Clock) *Pacer {
	if clock == nil {
		clock = systemClock{}
	}
	p := &Pacer{clock: clock}
	p.SetFramerate(DefaultFramerate)
	p.last = clock.Now()
	return p
}

// SetFramerate caps redraws at fps frames per second; fps <= 0 uncaps them.
func (p *Pacer) SetFramerate(fps float64) {
	if fps <= 0 {
		p.interval = 0
		return
	}
	p.interval = time.Duration(float64(time.Second) / fps)
}

func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Remaining is the time left before a redraw may proceed, zero when ready.
func (p *Pacer) Remaining() time.Duration {
	if p.interval <= 0 {
		return 0
	}
	elapsed := p.clock.Now().Sub(p.last)
	if elapsed >= p.interval {
		return 0
	}
	return p.interval - elapsed
}

func (p *Pacer) Ready() bool {
	return p.Remaining() == 0
}

// Mark records a completed redraw.
func (p *Pacer) Mark() {
	p.last = p.clock.Now()
}

func (p *Pacer) Last() time.Time {
	return p.last
}
