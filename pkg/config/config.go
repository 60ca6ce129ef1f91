// Package config holds the carton configuration and the input boundary
// that guards it, plus the tuning Settings of a viewer.
//
// Every setter validates before it mutates: a rejected value leaves the
// Configuration unchanged. Geometry code downstream assumes the values it
// receives went through here.
package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/ply"
)

// Configuration is the authoritative box state. Dimensions are millimeters
// regardless of the display unit.
type Configuration struct {
	Length   float64       `json:"length" yaml:"length"`
	Width    float64       `json:"width" yaml:"width"`
	Height   float64       `json:"height" yaml:"height"`
	Ply      ply.Ply       `json:"ply" yaml:"ply"`
	Unit     annotate.Unit `json:"unit" yaml:"unit"`
	Exploded bool          `json:"exploded" yaml:"exploded"`
}

// Default returns a 300x200x150 mm single-wall carton shown closed, in mm.
func Default() Configuration {
	return Configuration{
		Length: 300,
		Width:  200,
		Height: 150,
		Ply:    ply.Three,
		Unit:   annotate.UnitMM,
	}
}

// Volume returns the carton's volume in cubic millimeters.
func (c Configuration) Volume() float64 {
	return c.Length * c.Width * c.Height
}

func (c Configuration) String() string {
	mode := "solid"
	if c.Exploded {
		mode = "exploded"
	}
	return fmt.Sprintf("%gx%gx%g mm %s %s %s", c.Length, c.Width, c.Height, c.Ply, c.Unit, mode)
}

// Range is an inclusive interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies in r. NaN is never contained.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp pulls v into r.
func (r Range) Clamp(v float64) float64 {
	return lo.Clamp(v, r.Min, r.Max)
}

// Limits are the slider ranges, in millimeters.
type Limits struct {
	Length Range `json:"length" yaml:"length"`
	Width  Range `json:"width" yaml:"width"`
	Height Range `json:"height" yaml:"height"`
}

// DefaultLimits keeps every dimension above twice the thickest wall so
// the panel layout can never degenerate.
func DefaultLimits() Limits {
	return Limits{
		Length: Range{Min: 100, Max: 1000},
		Width:  Range{Min: 100, Max: 800},
		Height: Range{Min: 50, Max: 800},
	}
}

// MaxVolume is the volume of the largest carton the limits allow.
func (l Limits) MaxVolume() float64 {
	return l.Length.Max * l.Width.Max * l.Height.Max
}

// Clamp returns c with its dimensions pulled into range, for hosts that
// prefer clamping to rejection.
func (l Limits) Clamp(c Configuration) Configuration {
	c.Length = l.Length.Clamp(c.Length)
	c.Width = l.Width.Clamp(c.Width)
	c.Height = l.Height.Clamp(c.Height)
	return c
}

// ParseDimension parses a millimeter value typed or posted by the host.
func ParseDimension(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("config: %q: %w", s, ErrNotNumeric)
	}
	return v, nil
}

func setDimension(dst *float64, name string, v float64, r Range) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("config: %s %v: %w", name, v, ErrNotNumeric)
	}
	if !r.Contains(v) {
		return fmt.Errorf("config: %s %g mm not in [%g, %g]: %w", name, v, r.Min, r.Max, ErrOutOfRange)
	}
	*dst = v
	return nil
}

// SetLength sets the length in millimeters.
func (c *Configuration) SetLength(v float64, l Limits) error {
	return setDimension(&c.Length, "length", v, l.Length)
}

// SetWidth sets the width in millimeters.
func (c *Configuration) SetWidth(v float64, l Limits) error {
	return setDimension(&c.Width, "width", v, l.Width)
}

// SetHeight sets the height in millimeters.
func (c *Configuration) SetHeight(v float64, l Limits) error {
	return setDimension(&c.Height, "height", v, l.Height)
}

// SetPly selects a wall construction.
func (c *Configuration) SetPly(p ply.Ply) error {
	if !p.Valid() {
		return fmt.Errorf("config: ply %d: %w", int(p), ErrUnknownPly)
	}
	c.Ply = p
	return nil
}

// SetPlyString selects a ply from its key, e.g. "5" or "5-ply".
func (c *Configuration) SetPlyString(s string) error {
	p, err := ply.Parse(s)
	if err != nil {
		return fmt.Errorf("config: %w: %w", ErrUnknownPly, err)
	}
	c.Ply = p
	return nil
}

// SetUnit selects the display unit.
func (c *Configuration) SetUnit(u annotate.Unit) error {
	if !u.Valid() {
		return fmt.Errorf("config: unit %q: %w", string(u), ErrUnknownUnit)
	}
	c.Unit = u
	return nil
}

// SetUnitString selects the display unit from its key.
func (c *Configuration) SetUnitString(s string) error {
	u, err := annotate.ParseUnit(s)
	if err != nil {
		return fmt.Errorf("config: %w: %w", ErrUnknownUnit, err)
	}
	c.Unit = u
	return nil
}

// SetExploded switches between the closed carton and the layer stack.
func (c *Configuration) SetExploded(b bool) {
	c.Exploded = b
}
