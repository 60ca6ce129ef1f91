package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/camera"
	"github.com/artienterprises/cartonview/pkg/exploded"
	"github.com/artienterprises/cartonview/pkg/layout"
	"github.com/artienterprises/cartonview/pkg/timeline"
)

// Settings are the tuning constants of a viewer. None of them change the
// carton itself; they control how it is drawn and how it moves.
type Settings struct {
	// Scale converts millimeters to scene units.
	Scale float64 `json:"scale" yaml:"scale"`
	// WallExaggeration multiplies the real wall thickness so thin boards
	// stay visible at preview scale.
	WallExaggeration float64           `json:"wallExaggeration" yaml:"wall_exaggeration"`
	Limits           Limits            `json:"limits" yaml:"limits"`
	Layout           layout.Options    `json:"layout" yaml:"layout"`
	Exploded         exploded.Options  `json:"exploded" yaml:"exploded"`
	Annotate         annotate.Options  `json:"annotate" yaml:"annotate"`
	Camera           camera.Settings   `json:"camera" yaml:"camera"`
	HeroCamera       camera.Settings   `json:"heroCamera" yaml:"hero_camera"`
	Timeline         timeline.Settings `json:"timeline" yaml:"timeline"`
}

// DefaultSettings returns the built-in tuning.
func DefaultSettings() Settings {
	s := Settings{
		Scale:            0.005,
		WallExaggeration: 2,
		Limits:           DefaultLimits(),
		Layout:           layout.DefaultOptions(),
		Exploded:         exploded.DefaultOptions(),
		Annotate:         annotate.DefaultOptions(),
		Camera:           camera.DefaultSettings(),
		HeroCamera:       camera.HeroSettings(),
		Timeline:         timeline.DefaultSettings(),
	}
	s.Annotate.Scale = s.Scale
	return s
}

// Wall returns the drawn wall thickness of a profile in scene units.
func (s Settings) Wall(thicknessMM float64) float64 {
	return thicknessMM * s.Scale * s.WallExaggeration
}

// Validate reports the first unusable setting.
func (s Settings) Validate() error {
	if !(s.Scale > 0) {
		return fmt.Errorf("config: scale %v must be positive", s.Scale)
	}
	if !(s.WallExaggeration > 0) {
		return fmt.Errorf("config: wall exaggeration %v must be positive", s.WallExaggeration)
	}
	for name, r := range map[string]Range{"length": s.Limits.Length, "width": s.Limits.Width, "height": s.Limits.Height} {
		if !(r.Min > 0) || r.Min > r.Max {
			return fmt.Errorf("config: %s limits [%g, %g] are invalid", name, r.Min, r.Max)
		}
	}
	if !(s.Exploded.Gap > 0) {
		return fmt.Errorf("config: exploded gap %v must be positive", s.Exploded.Gap)
	}
	if s.Exploded.FluteRows < 1 || s.Exploded.FluteCols < 1 {
		return fmt.Errorf("config: flute grid %dx%d must be at least 1x1", s.Exploded.FluteRows, s.Exploded.FluteCols)
	}
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("config: camera: %w", err)
	}
	if err := s.HeroCamera.Validate(); err != nil {
		return fmt.Errorf("config: hero camera: %w", err)
	}
	if err := s.Timeline.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads a YAML settings file over the defaults. Keys missing from the
// file keep their default values. The scene scale always overrides the
// annotation scale.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings over the defaults and validates them.
func Parse(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("config: parse settings: %w", err)
	}
	s.Annotate.Scale = s.Scale
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: invalid settings: %w", err)
	}
	return s, nil
}
