package trajectory

import (
	"fmt"
	"math"
	"time"
)

// Playback speed multipliers accepted by [Playback.SetSpeed].
const (
	MinSpeed = 0.1
	MaxSpeed = 3.0
)

// Playback is the playback clock of a session: the cursor time that the
// preview is posed at, the length of the timeline and the speed at which
// the cursor advances while playing.
//
// The clock has no timer of its own. Whoever drives the preview calls
// [Playback.Advance] with the wall-clock time that passed.
type Playback struct {
	cursor   float64
	duration float64
	speed    float64
	playing  bool
}

func newPlayback(durationMs, speed float64) Playback {
	return Playback{duration: durationMs, speed: clampSpeed(speed)}
}

// Cursor returns the current time in milliseconds.
func (p *Playback) Cursor() float64 { return p.cursor }

// Duration returns the length of the timeline in milliseconds.
func (p *Playback) Duration() float64 { return p.duration }

// Speed returns the speed multiplier.
func (p *Playback) Speed() float64 { return p.speed }

// Playing reports whether the clock is running.
func (p *Playback) Playing() bool { return p.playing }

// Seek moves the cursor to t, limited to [0, Duration].
func (p *Playback) Seek(t float64) {
	if math.IsNaN(t) {
		return
	}
	p.cursor = max(0, min(p.duration, t))
}

// Play starts the clock.
func (p *Playback) Play() { p.playing = true }

// Pause stops the clock, keeping the cursor.
func (p *Playback) Pause() { p.playing = false }

// Stop stops the clock and rewinds the cursor to 0.
func (p *Playback) Stop() {
	p.playing = false
	p.cursor = 0
}

// Toggle starts a stopped clock and stops a running one.
func (p *Playback) Toggle() { p.playing = !p.playing }

// SetSpeed sets the speed multiplier, limited to [MinSpeed, MaxSpeed], and
// returns the speed that was set.
func (p *Playback) SetSpeed(s float64) float64 {
	p.speed = clampSpeed(s)
	return p.speed
}

// SetDuration sets the length of the timeline. The cursor is pulled back
// if it lies beyond the new end.
func (p *Playback) SetDuration(ms float64) error {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 {
		return fmt.Errorf("%w: duration %g ms must be positive", ErrInvalidTime, ms)
	}
	p.duration = ms
	p.cursor = min(p.cursor, ms)
	return nil
}

// Advance moves the cursor of a running clock forward by elapsed wall-clock
// time, scaled by the speed multiplier. When the cursor reaches the end of
// the timeline, the clock stops and rewinds to 0, and Advance reports true.
func (p *Playback) Advance(elapsed time.Duration) (finished bool) {
	if !p.playing {
		return false
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	p.cursor += ms * p.speed
	if p.cursor >= p.duration {
		p.Stop()
		return true
	}
	return false
}

func clampSpeed(s float64) float64 {
	if math.IsNaN(s) {
		return DefaultSpeed
	}
	return max(MinSpeed, min(MaxSpeed, s))
}
