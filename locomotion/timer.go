package locomotion

// Timer accumulates elapsed time against a fixed duration. It replaces suspended control flow for timed
// behaviours: completion is a predicate, cancellation is dropping the timer.
type Timer struct {
	Elapsed  float32
	Duration float32
}

// NewTimer returns a timer that completes after duration seconds.
func NewTimer(duration float32) Timer {
	return Timer{Duration: duration}
}

// Advance adds dt to the elapsed time.
func (t *Timer) Advance(dt float32) {
	if t.Elapsed < t.Duration {
		t.Elapsed += dt
	}
}

// Done returns true once the elapsed time reached the duration. A zero timer is always done.
func (t Timer) Done() bool {
	return t.Elapsed >= t.Duration
}

// Progress returns the completed fraction in [0, 1].
func (t Timer) Progress() float32 {
	if t.Duration <= 0 {
		return 1
	}
	if p := t.Elapsed / t.Duration; p < 1 {
		return p
	}
	return 1
}

// Reset discards the timer.
func (t *Timer) Reset() {
	*t = Timer{}
}
