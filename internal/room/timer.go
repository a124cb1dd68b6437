package room

import "time"

// phaseTimer is the armed deadline of the current vote or night phase.
// Exactly one is armed during those phases and none otherwise.
type phaseTimer struct {
	t *time.Timer
}

// armTimerLocked schedules fn to run after the phase duration. The
// generation counter makes cancellation race-safe: a callback that fires
// while being cancelled observes the stale generation and no-ops.
func (r *Room) armTimerLocked(fn func()) {
	r.timerGen++
	gen := r.timerGen
	pt := &phaseTimer{}
	pt.t = time.AfterFunc(r.phaseDuration, func() {
		r.onTimerFired(gen, fn)
	})
	r.timer = pt
}

// onTimerFired runs on the timer goroutine and acquires the write lock
// fresh before touching room state.
func (r *Room) onTimerFired(gen uint64, fn func()) {
	r.lock()
	defer r.unlock()
	if r.timer == nil || gen != r.timerGen {
		return // cancelled or superseded while in flight
	}
	r.timer = nil
	fn()
}

// cancelTimerLocked disarms the phase timer. Safe to call when none is armed.
func (r *Room) cancelTimerLocked() {
	if r.timer == nil {
		return
	}
	r.timer.t.Stop()
	r.timer = nil
	r.timerGen++
}
