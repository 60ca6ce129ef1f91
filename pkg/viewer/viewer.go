// Package viewer is the configurator orchestrator. A Viewer owns one
// Configuration, one camera controller and the cached Scene derived from
// them; every accepted change rebuilds the scene synchronously. Viewers
// share nothing, so a page can host several.
package viewer

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/camera"
	"github.com/artienterprises/cartonview/pkg/config"
	"github.com/artienterprises/cartonview/pkg/ply"
	"github.com/artienterprises/cartonview/pkg/strength"
)

// Viewer is not safe for concurrent use; the host calls it from its event
// and frame loop.
type Viewer struct {
	id       uuid.UUID
	settings config.Settings
	cfg      config.Configuration
	cam      *camera.Controller
	scene    *Scene
	logger   *log.Logger
	rebuilds int
}

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger traces rebuilds to l.
func WithLogger(l *log.Logger) Option {
	return func(v *Viewer) { v.logger = l }
}

// WithConfiguration starts the viewer from c instead of the defaults.
// New fails if c does not validate.
func WithConfiguration(c config.Configuration) Option {
	return func(v *Viewer) { v.cfg = c }
}

// New returns a viewer showing the default carton.
func New(s config.Settings, opts ...Option) (*Viewer, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	v := &Viewer{
		id:       uuid.New(),
		settings: s,
		cfg:      config.Default(),
		cam:      camera.New(s.Camera),
	}
	for _, o := range opts {
		o(v)
	}
	if errs := config.Validate(v.cfg, s); config.HasErrors(errs) {
		return nil, fmt.Errorf("viewer: initial configuration: %w", errs[0])
	}
	v.rebuild("init")
	return v, nil
}

// ID identifies the instance.
func (v *Viewer) ID() string { return v.id.String() }

// Config returns the current configuration.
func (v *Viewer) Config() config.Configuration { return v.cfg }

// Settings returns the viewer's tuning.
func (v *Viewer) Settings() config.Settings { return v.settings }

// Scene returns the cached scene for the current configuration. Callers
// must not modify it.
func (v *Viewer) Scene() *Scene { return v.scene }

// Rebuilds counts scene rebuilds since New.
func (v *Viewer) Rebuilds() int { return v.rebuilds }

// Camera exposes the interaction controller for pointer input.
func (v *Viewer) Camera() *camera.Controller { return v.cam }

func (v *Viewer) rebuild(reason string) {
	v.scene = Build(v.cfg, v.settings)
	v.rebuilds++
	if v.logger != nil {
		v.logger.Printf("viewer %s: rebuild (%s): %s, %d descriptors", v.id.String()[:8], reason, v.cfg, len(v.scene.Descriptors))
	}
}

// update applies set to a copy of the configuration and commits it only
// if set succeeds and the result still validates.
func (v *Viewer) update(reason string, set func(*config.Configuration) error) error {
	next := v.cfg
	if err := set(&next); err != nil {
		return err
	}
	if errs := config.Validate(next, v.settings); config.HasErrors(errs) {
		return fmt.Errorf("viewer: %s: %w", reason, errs[0])
	}
	v.cfg = next
	v.rebuild(reason)
	return nil
}

// SetLength sets the length in millimeters.
func (v *Viewer) SetLength(mm float64) error {
	return v.update("length", func(c *config.Configuration) error { return c.SetLength(mm, v.settings.Limits) })
}

// SetWidth sets the width in millimeters.
func (v *Viewer) SetWidth(mm float64) error {
	return v.update("width", func(c *config.Configuration) error { return c.SetWidth(mm, v.settings.Limits) })
}

// SetHeight sets the height in millimeters.
func (v *Viewer) SetHeight(mm float64) error {
	return v.update("height", func(c *config.Configuration) error { return c.SetHeight(mm, v.settings.Limits) })
}

// SetPly selects the wall construction.
func (v *Viewer) SetPly(p ply.Ply) error {
	return v.update("ply", func(c *config.Configuration) error { return c.SetPly(p) })
}

// SetUnit selects the display unit. Only labels change.
func (v *Viewer) SetUnit(u annotate.Unit) error {
	return v.update("unit", func(c *config.Configuration) error { return c.SetUnit(u) })
}

// SetExploded switches between the closed carton and the layer stack.
// The committed configuration is always valid and the view mode takes no
// part in validation, so this cannot be rejected.
func (v *Viewer) SetExploded(b bool) {
	v.cfg.SetExploded(b)
	v.rebuild("exploded")
}

// ToggleExploded flips the view mode and returns the new state.
func (v *Viewer) ToggleExploded() bool {
	v.SetExploded(!v.cfg.Exploded)
	return v.cfg.Exploded
}

// Apply replaces the whole configuration, e.g. from a script. Every
// validation error is returned; nothing changes unless c is clean.
func (v *Viewer) Apply(c config.Configuration) []config.ValidationError {
	errs := config.Validate(c, v.settings)
	if config.HasErrors(errs) {
		return errs
	}
	v.cfg = c
	v.rebuild("apply")
	return errs
}

// Reset eases the camera back to its defaults and closes the carton.
func (v *Viewer) Reset() {
	v.cam.Reset()
	if v.cfg.Exploded {
		v.SetExploded(false)
	}
}

// Advance runs the camera for dt seconds of frame time.
func (v *Viewer) Advance(dt float64) int { return v.cam.Advance(dt) }

// CurrentTransform returns the camera state for this frame.
func (v *Viewer) CurrentTransform() camera.Transform { return v.cam.CurrentTransform() }

// Recommend suggests a ply for a product and flags whether the current
// one is under-rated.
func (v *Viewer) Recommend(weightKg float64, shipping strength.Shipping) (strength.Suggestion, error) {
	return strength.Recommend(weightKg, shipping, v.cfg.Ply)
}
