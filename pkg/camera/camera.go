// Package camera implements the drag-rotate and zoom controller. Input
// only moves targets; Tick eases the current values toward them, which is
// the only way the visible rotation or zoom ever changes.
package camera

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// State is the pointer state of a Controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Settings tunes a Controller. Angles are radians; sensitivities are
// radians per pixel of pointer travel.
type Settings struct {
	Damping          float64    `json:"damping" yaml:"damping"`
	YawSensitivity   float64    `json:"yawSensitivity" yaml:"yaw_sensitivity"`
	PitchSensitivity float64    `json:"pitchSensitivity" yaml:"pitch_sensitivity"`
	PitchMin         float64    `json:"pitchMin" yaml:"pitch_min"`
	PitchMax         float64    `json:"pitchMax" yaml:"pitch_max"`
	DefaultYaw       float64    `json:"defaultYaw" yaml:"default_yaw"`
	DefaultPitch     float64    `json:"defaultPitch" yaml:"default_pitch"`
	ZoomMin          float64    `json:"zoomMin" yaml:"zoom_min"`
	ZoomMax          float64    `json:"zoomMax" yaml:"zoom_max"`
	DefaultZoom      float64    `json:"defaultZoom" yaml:"default_zoom"`
	WheelSensitivity float64    `json:"wheelSensitivity" yaml:"wheel_sensitivity"`
	ViewAxis         [3]float64 `json:"viewAxis" yaml:"view_axis"`
	// AutoRotate is added to the yaw target every tick while idle.
	AutoRotate float64 `json:"autoRotate" yaml:"auto_rotate"`
	// TickRate is the number of smoothing steps per second of Advance.
	TickRate float64 `json:"tickRate" yaml:"tick_rate"`
}

// DefaultSettings is the configurator's controller: camera at (4,3,5)
// looking at the origin, box tilted toward the viewer.
func DefaultSettings() Settings {
	return Settings{
		Damping:          0.08,
		YawSensitivity:   0.008,
		PitchSensitivity: 0.005,
		PitchMin:         -1.2,
		PitchMax:         0.8,
		DefaultYaw:       0.5,
		DefaultPitch:     -0.3,
		ZoomMin:          3,
		ZoomMax:          12,
		DefaultZoom:      math.Sqrt(50),
		WheelSensitivity: 0.005,
		ViewAxis:         [3]float64{4, 3, 5},
		TickRate:         60,
	}
}

// Validate reports the first inconsistent setting.
func (s Settings) Validate() error {
	switch {
	case !(s.Damping > 0 && s.Damping <= 1):
		return fmt.Errorf("camera: damping %v outside (0, 1]", s.Damping)
	case s.PitchMin > s.PitchMax:
		return fmt.Errorf("camera: pitch range [%v, %v] is inverted", s.PitchMin, s.PitchMax)
	case !(s.ZoomMin > 0) || s.ZoomMin > s.ZoomMax:
		return fmt.Errorf("camera: zoom range [%v, %v] is invalid", s.ZoomMin, s.ZoomMax)
	case s.ViewAxis == [3]float64{}:
		return fmt.Errorf("camera: view axis is zero")
	case !(s.TickRate > 0):
		return fmt.Errorf("camera: tick rate %v must be positive", s.TickRate)
	}
	return nil
}

// Transform is what the renderer reads each frame: the model rotation and
// the camera position along the view axis.
type Transform struct {
	Yaw      float64    `json:"yaw"`
	Pitch    float64    `json:"pitch"`
	Zoom     float64    `json:"zoom"`
	Position [3]float64 `json:"position"`
}

// Controller is the interaction state of one viewer. It is not safe for
// concurrent use; the host drives it from its frame loop.
type Controller struct {
	s     Settings
	axis  [3]float64
	state State

	lastX, lastY float64

	yaw, pitch, zoom    float64
	yawT, pitchT, zoomT float64
	pinching            bool
	hovering            bool
	paused              bool
	accum               float64
}

// New returns a controller resting at its defaults. It panics on invalid
// settings.
func New(s Settings) *Controller {
	if err := s.Validate(); err != nil {
		panic(err.Error())
	}
	n := math.Sqrt(s.ViewAxis[0]*s.ViewAxis[0] + s.ViewAxis[1]*s.ViewAxis[1] + s.ViewAxis[2]*s.ViewAxis[2])
	c := &Controller{
		s:    s,
		axis: [3]float64{s.ViewAxis[0] / n, s.ViewAxis[1] / n, s.ViewAxis[2] / n},
	}
	c.yawT, c.pitchT = s.DefaultYaw, lo.Clamp(s.DefaultPitch, s.PitchMin, s.PitchMax)
	c.zoomT = lo.Clamp(s.DefaultZoom, s.ZoomMin, s.ZoomMax)
	c.yaw, c.pitch, c.zoom = c.yawT, c.pitchT, c.zoomT
	return c
}

// Settings returns the controller's settings.
func (c *Controller) Settings() Settings { return c.s }

// State returns the pointer state.
func (c *Controller) State() State { return c.state }

// Interacting reports whether the user is dragging, pinching or hovering
// over the viewport.
func (c *Controller) Interacting() bool {
	return c.state == Dragging || c.pinching || c.hovering
}

// SetHover records the pointer entering or leaving the viewport. Leaving
// also ends a drag.
func (c *Controller) SetHover(in bool) {
	c.hovering = in
	if !in {
		c.state = Idle
	}
}

// PauseAutoRotate suspends auto-rotation without touching the targets.
func (c *Controller) PauseAutoRotate(p bool) { c.paused = p }

// PointerDown starts a drag at (x, y), in viewport pixels.
func (c *Controller) PointerDown(x, y float64) {
	c.state = Dragging
	c.lastX, c.lastY = x, y
}

// PointerMove moves the rotation targets by the pointer delta. It is
// ignored unless dragging.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != Dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.yawT += dx * c.s.YawSensitivity
	c.pitchT = lo.Clamp(c.pitchT+dy*c.s.PitchSensitivity, c.s.PitchMin, c.s.PitchMax)
}

// PointerUp ends a drag. Hosts call it for pointer-up anywhere, not just
// inside the viewport.
func (c *Controller) PointerUp() {
	c.state = Idle
}

// Wheel moves the zoom target by a wheel delta; positive zooms out.
func (c *Controller) Wheel(delta float64) {
	c.SetZoomTarget(c.zoomT + delta*c.s.WheelSensitivity)
}

// Pinch scales the zoom target by the inverse of a gesture scale factor:
// spreading fingers (scale > 1) moves the camera closer.
func (c *Controller) Pinch(scale float64) {
	if !(scale > 0) {
		return
	}
	c.SetZoomTarget(c.zoomT / scale)
}

// PinchActive marks a touch gesture in progress. Like a drag, it counts
// as interacting.
func (c *Controller) PinchActive(active bool) {
	c.pinching = active
}

// SetZoomTarget stores z clamped to the zoom range.
func (c *Controller) SetZoomTarget(z float64) {
	c.zoomT = lo.Clamp(z, c.s.ZoomMin, c.s.ZoomMax)
}

// Targets returns the yaw, pitch and zoom targets.
func (c *Controller) Targets() (yaw, pitch, zoom float64) {
	return c.yawT, c.pitchT, c.zoomT
}

// Reset moves the targets back to the defaults. Current values keep
// easing, so the return is animated.
func (c *Controller) Reset() {
	c.yawT = c.s.DefaultYaw
	c.pitchT = lo.Clamp(c.s.DefaultPitch, c.s.PitchMin, c.s.PitchMax)
	c.zoomT = lo.Clamp(c.s.DefaultZoom, c.s.ZoomMin, c.s.ZoomMax)
}

// Tick runs one smoothing step.
func (c *Controller) Tick() {
	if c.s.AutoRotate != 0 && !c.paused && !c.Interacting() {
		c.yawT += c.s.AutoRotate
	}
	d := c.s.Damping
	c.yaw += (c.yawT - c.yaw) * d
	c.pitch += (c.pitchT - c.pitch) * d
	c.zoom += (c.zoomT - c.zoom) * d
}

// maxSteps bounds catch-up after a long pause (e.g. a background tab).
const maxSteps = 30

// Advance runs as many fixed-rate ticks as dt seconds cover, carrying the
// remainder to the next call, and returns the number of ticks run.
func (c *Controller) Advance(dt float64) int {
	if !(dt > 0) {
		return 0
	}
	step := 1 / c.s.TickRate
	c.accum += dt
	n := 0
	for c.accum >= step && n < maxSteps {
		c.Tick()
		c.accum -= step
		n++
	}
	// Drop the backlog after a stall, but keep a normal remainder.
	if c.accum >= step {
		c.accum = 0
	}
	return n
}

// CurrentTransform returns the eased rotation and the camera position at
// the current zoom along the fixed view axis.
func (c *Controller) CurrentTransform() Transform {
	return Transform{
		Yaw:   c.yaw,
		Pitch: c.pitch,
		Zoom:  c.zoom,
		Position: [3]float64{
			c.axis[0] * c.zoom,
			c.axis[1] * c.zoom,
			c.axis[2] * c.zoom,
		},
	}
}

// HeroSettings is the landing-page preview: slower drag, tighter pitch
// range and a gentle auto-rotation.
func HeroSettings() Settings {
	s := DefaultSettings()
	s.Damping = 0.06
	s.YawSensitivity = 0.006
	s.PitchSensitivity = 0.004
	s.PitchMin, s.PitchMax = -1, 0.6
	s.DefaultYaw, s.DefaultPitch = 0.5, -0.25
	s.ViewAxis = [3]float64{2.5, 1.8, 4}
	s.DefaultZoom = math.Sqrt(2.5*2.5 + 1.8*1.8 + 4*4)
	s.ZoomMin, s.ZoomMax = 3, 8
	s.AutoRotate = 0.003
	return s
}
