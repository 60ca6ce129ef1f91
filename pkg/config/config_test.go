package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/ply"
	"github.com/artienterprises/cartonview/pkg/strength"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 300.0, c.Length)
	assert.Equal(t, 200.0, c.Width)
	assert.Equal(t, 150.0, c.Height)
	assert.Equal(t, ply.Three, c.Ply)
	assert.Equal(t, annotate.UnitMM, c.Unit)
	assert.False(t, c.Exploded)
	assert.Empty(t, Validate(c, DefaultSettings()))
	assert.Equal(t, "300x200x150 mm 3-ply mm solid", c.String())
}

func TestLimitsMatchReferenceVolume(t *testing.T) {
	assert.Equal(t, strength.MaxReferenceVolume, DefaultLimits().MaxVolume())
}

func TestSettersRejectOutOfRange(t *testing.T) {
	lim := DefaultLimits()
	tests := []struct {
		name string
		set  func(*Configuration) error
		want error
	}{
		{"length low", func(c *Configuration) error { return c.SetLength(99, lim) }, ErrOutOfRange},
		{"length high", func(c *Configuration) error { return c.SetLength(1001, lim) }, ErrOutOfRange},
		{"width high", func(c *Configuration) error { return c.SetWidth(801, lim) }, ErrOutOfRange},
		{"height low", func(c *Configuration) error { return c.SetHeight(10, lim) }, ErrOutOfRange},
		{"height nan", func(c *Configuration) error { return c.SetHeight(math.NaN(), lim) }, ErrNotNumeric},
		{"ply", func(c *Configuration) error { return c.SetPly(ply.Ply(4)) }, ErrUnknownPly},
		{"ply string", func(c *Configuration) error { return c.SetPlyString("nine") }, ErrUnknownPly},
		{"unit", func(c *Configuration) error { return c.SetUnit("cm") }, ErrUnknownUnit},
		{"unit string", func(c *Configuration) error { return c.SetUnitString("ft") }, ErrUnknownUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := tt.set(&c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, Default(), c, "rejected input must not mutate")
		})
	}
}

func TestSettersAccept(t *testing.T) {
	lim := DefaultLimits()
	c := Default()
	require.NoError(t, c.SetLength(1000, lim))
	require.NoError(t, c.SetWidth(100, lim))
	require.NoError(t, c.SetHeight(50, lim))
	require.NoError(t, c.SetPlyString("7-ply"))
	require.NoError(t, c.SetUnitString("IN"))
	c.SetExploded(true)
	assert.Equal(t, Configuration{Length: 1000, Width: 100, Height: 50, Ply: ply.Seven, Unit: annotate.UnitIn, Exploded: true}, c)
}

func TestParseDimension(t *testing.T) {
	v, err := ParseDimension(" 250.5 ")
	require.NoError(t, err)
	assert.Equal(t, 250.5, v)
	for _, s := range []string{"", "abc", "NaN", "Inf", "12mm"} {
		_, err := ParseDimension(s)
		assert.ErrorIs(t, err, ErrNotNumeric, s)
	}
}

func TestLimitsClamp(t *testing.T) {
	c := Configuration{Length: 5000, Width: 10, Height: 300, Ply: ply.Five, Unit: annotate.UnitMM}
	got := DefaultLimits().Clamp(c)
	assert.Equal(t, 1000.0, got.Length)
	assert.Equal(t, 100.0, got.Width)
	assert.Equal(t, 300.0, got.Height)
}

func TestValidateCollectsAll(t *testing.T) {
	c := Configuration{Length: 20, Width: 5000, Height: 150, Ply: ply.Ply(2), Unit: "yd"}
	errs := Validate(c, DefaultSettings())
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
		assert.Equal(t, SeverityError, e.Severity)
	}
	assert.Equal(t, map[string]bool{"length": true, "width": true, "ply": true, "unit": true}, fields)
	assert.True(t, HasErrors(errs))
}

func TestValidateWallFit(t *testing.T) {
	s := DefaultSettings()
	s.Limits.Length.Min = 1
	c := Default()
	c.Ply = ply.Seven
	c.Length = 30 // two 20 mm drawn walls do not fit
	errs := Validate(c, s)
	require.Len(t, errs, 1)
	assert.Equal(t, "ply", errs[0].Field)
	assert.Contains(t, errs[0].Error(), "[error] ply:")
}

func TestSliderMinimumsFitEveryPly(t *testing.T) {
	s := DefaultSettings()
	lim := s.Limits
	for _, p := range ply.All() {
		c := Configuration{Length: lim.Length.Min, Width: lim.Width.Min, Height: lim.Height.Min, Ply: p, Unit: annotate.UnitMM}
		assert.Empty(t, Validate(c, s), "%s at minimum size", p)
	}
}

func TestSettingsDefaultsValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, s.Scale, s.Annotate.Scale)
	assert.InDelta(t, 0.032, s.Wall(3.2), 1e-12)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := []byte(`
scale: 0.01
limits:
  length: {min: 120, max: 900}
layout:
  flaps:
    front: -0.7
exploded:
  gap: 0.3
camera:
  damping: 0.1
timeline:
  hold: 2
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.01, s.Scale)
	assert.Equal(t, 0.01, s.Annotate.Scale)
	assert.Equal(t, Range{Min: 120, Max: 900}, s.Limits.Length)
	assert.Equal(t, DefaultLimits().Width, s.Limits.Width)
	assert.Equal(t, -0.7, s.Layout.Flaps.Front)
	assert.Equal(t, 0.6, s.Layout.Flaps.Back)
	assert.Equal(t, 0.3, s.Exploded.Gap)
	assert.Equal(t, 0.88, s.Exploded.FootprintLength)
	assert.Equal(t, 0.1, s.Camera.Damping)
	assert.Equal(t, 0.008, s.Camera.YawSensitivity)
	assert.Equal(t, 2.0, s.Timeline.Hold)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("scale: [1, 2"))
	assert.Error(t, err)

	_, err = Parse([]byte("camera:\n  damping: 2\n"))
	assert.ErrorContains(t, err, "damping")

	_, err = Parse([]byte("limits:\n  height: {min: 500, max: 100}\n"))
	assert.ErrorContains(t, err, "height")
}
