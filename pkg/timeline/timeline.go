// Package timeline drives the periodic exploded-layer animation as a small
// state machine: Collapsed, Expanding, Held, Collapsing, then Collapsed
// again. Separation moves on a damped spring toward 0 or 1 and snaps to
// the target when a phase ends, so every cycle finishes in a known state.
package timeline

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/samber/lo"
)

// State is a phase of the animation.
type State int

const (
	Collapsed State = iota
	Expanding
	Held
	Collapsing
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	case Held:
		return "held"
	case Collapsing:
		return "collapsing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Settings times the animation. Durations are seconds.
type Settings struct {
	Expand   float64 `json:"expand" yaml:"expand"`
	Hold     float64 `json:"hold" yaml:"hold"`
	Collapse float64 `json:"collapse" yaml:"collapse"`
	// Interval is the idle time between automatic runs.
	Interval float64 `json:"interval" yaml:"interval"`
	// Defer postpones a due run while the user is interacting.
	Defer float64 `json:"defer" yaml:"defer"`
	FPS   int     `json:"fps" yaml:"fps"`
	// Damping is the spring damping ratio; 1 is critically damped.
	Damping float64 `json:"damping" yaml:"damping"`
}

// DefaultSettings returns the hero animation timing.
func DefaultSettings() Settings {
	return Settings{
		Expand:   0.8,
		Hold:     4,
		Collapse: 0.7,
		Interval: 15,
		Defer:    3,
		FPS:      60,
		Damping:  1,
	}
}

// Validate reports the first unusable setting.
func (s Settings) Validate() error {
	switch {
	case s.FPS <= 0:
		return fmt.Errorf("timeline: fps %d must be positive", s.FPS)
	case !(s.Expand > 0) || !(s.Collapse > 0):
		return fmt.Errorf("timeline: expand and collapse durations must be positive")
	case s.Hold < 0 || s.Interval < 0 || s.Defer < 0:
		return fmt.Errorf("timeline: hold, interval and defer must not be negative")
	case !(s.Damping > 0):
		return fmt.Errorf("timeline: damping %v must be positive", s.Damping)
	}
	return nil
}

// settle is the spring's omega*t at which a critically damped spring is
// within about 1% of its target.
const settle = 6.6

// maxSteps bounds catch-up after a long pause.
const maxSteps = 30

// Timeline is one animation instance. It is driven by the host's frame
// loop and is not safe for concurrent use.
type Timeline struct {
	s Settings

	state State
	frame int // frames spent in the current phase, or idle while collapsed

	sep, vel float64
	expand   harmonica.Spring
	collapse harmonica.Spring

	auto        bool
	interacting bool
	accum       float64
}

// New returns a collapsed timeline with automatic runs disabled. It
// panics on invalid settings.
func New(s Settings) *Timeline {
	if err := s.Validate(); err != nil {
		panic(err.Error())
	}
	dt := harmonica.FPS(s.FPS)
	return &Timeline{
		s:        s,
		expand:   harmonica.NewSpring(dt, settle/s.Expand, s.Damping),
		collapse: harmonica.NewSpring(dt, settle/s.Collapse, s.Damping),
	}
}

func (t *Timeline) frames(seconds float64) int {
	return int(math.Round(seconds * float64(t.s.FPS)))
}

// State returns the current phase.
func (t *Timeline) State() State { return t.state }

// Separation returns how far the layers are apart, 0 collapsed to 1 fully
// expanded.
func (t *Timeline) Separation() float64 { return t.sep }

// LabelOpacity follows the separation so labels fade with the layers.
func (t *Timeline) LabelOpacity() float64 {
	return lo.Clamp(t.sep, 0, 1)
}

// Exploded reports whether a run is in progress.
func (t *Timeline) Exploded() bool { return t.state != Collapsed }

// Scheduled reports whether automatic runs are enabled.
func (t *Timeline) Scheduled() bool { return t.auto }

// SetInteracting tells the timeline the user is dragging; a due automatic
// run is deferred until they stop.
func (t *Timeline) SetInteracting(b bool) { t.interacting = b }

// Schedule enables automatic runs, the first one Interval seconds from now.
func (t *Timeline) Schedule() {
	t.auto = true
	if t.state == Collapsed {
		t.frame = 0
	}
}

// Start begins a run now. It is a no-op unless collapsed.
func (t *Timeline) Start() bool {
	if t.state != Collapsed {
		return false
	}
	t.enter(Expanding)
	return true
}

// Kill stops the animation immediately: layers snap together and
// automatic runs stop until Schedule is called again.
func (t *Timeline) Kill() {
	t.state = Collapsed
	t.frame = 0
	t.sep, t.vel = 0, 0
	t.auto = false
	t.accum = 0
}

func (t *Timeline) enter(s State) {
	t.state = s
	t.frame = 0
}

// Tick advances one frame and returns the resulting phase.
func (t *Timeline) Tick() State {
	t.frame++
	switch t.state {
	case Collapsed:
		if !t.auto || t.frame < t.frames(t.s.Interval) {
			break
		}
		if t.interacting {
			// Check again after the defer delay.
			t.frame = t.frames(t.s.Interval) - t.frames(t.s.Defer)
			break
		}
		t.enter(Expanding)
	case Expanding:
		t.sep, t.vel = t.expand.Update(t.sep, t.vel, 1)
		if t.frame >= t.frames(t.s.Expand) {
			t.sep, t.vel = 1, 0
			t.enter(Held)
		}
	case Held:
		if t.frame >= t.frames(t.s.Hold) {
			t.enter(Collapsing)
		}
	case Collapsing:
		t.sep, t.vel = t.collapse.Update(t.sep, t.vel, 0)
		if t.frame >= t.frames(t.s.Collapse) {
			t.sep, t.vel = 0, 0
			t.enter(Collapsed)
		}
	}
	return t.state
}

// Advance runs as many frames as dt seconds cover and returns how many ran.
func (t *Timeline) Advance(dt float64) int {
	if !(dt > 0) {
		return 0
	}
	step := 1 / float64(t.s.FPS)
	t.accum += dt
	n := 0
	for t.accum >= step && n < maxSteps {
		t.Tick()
		t.accum -= step
		n++
	}
	// Drop the backlog after a stall, but keep a normal remainder.
	if t.accum >= step {
		t.accum = 0
	}
	return n
}
