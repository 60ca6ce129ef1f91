package viewer

import (
	"github.com/google/uuid"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/camera"
	"github.com/artienterprises/cartonview/pkg/flute"
	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/ply"
	"github.com/artienterprises/cartonview/pkg/timeline"
)

// HeroOptions sizes the landing-page stack, in scene units.
type HeroOptions struct {
	Length float64 `json:"length" yaml:"length"`
	Width  float64 `json:"width" yaml:"width"`
	Liner  float64 `json:"liner" yaml:"liner"`
	Flute  float64 `json:"flute" yaml:"flute"`
	// FluteInset shrinks the flute footprint so it stays inside the liners.
	FluteInset float64 `json:"fluteInset" yaml:"flute_inset"`
	// Gap is how far each liner moves out when fully expanded.
	Gap float64 `json:"gap" yaml:"gap"`
	// LabelOffset pushes labels to the right of the stack.
	LabelOffset float64 `json:"labelOffset" yaml:"label_offset"`
}

// DefaultHeroOptions is a single-wall sheet seen up close.
func DefaultHeroOptions() HeroOptions {
	return HeroOptions{
		Length:      1.6,
		Width:       1.1,
		Liner:       0.06,
		Flute:       0.14,
		FluteInset:  0.98,
		Gap:         0.45,
		LabelOffset: 1.0,
	}
}

// Hero material names.
const (
	MaterialHeroLiner = "hero-liner"
	MaterialHeroFlute = "hero-flute"
)

// Hero is the auto-rotating three-layer preview that periodically pulls
// its liners apart. It is independent of any Viewer.
type Hero struct {
	id      uuid.UUID
	opts    HeroOptions
	cam     *camera.Controller
	tl      *timeline.Timeline
	layers  [3]kernel.Descriptor
	base    [3]float64
	names   []string
	mobile  bool
	visible bool
}

// NewHero builds the stack and, unless mobile, schedules the first
// explode. It panics on invalid camera or timeline settings.
func NewHero(cam camera.Settings, tl timeline.Settings, opts HeroOptions, mobile bool) *Hero {
	h := &Hero{
		id:      uuid.New(),
		opts:    opts,
		cam:     camera.New(cam),
		tl:      timeline.New(tl),
		names:   ply.MustLookup(ply.Three).LayerNames,
		mobile:  mobile,
		visible: true,
	}
	h.build()
	if !mobile {
		h.tl.Schedule()
	}
	return h
}

func (h *Hero) build() {
	o := h.opts
	linerY := o.Flute/2 + o.Liner/2
	h.base = [3]float64{linerY, 0, -linerY}

	fl := flute.Defaults(o.Length*o.FluteInset, o.Flute, o.Width*o.FluteInset)
	mesh := flute.BuildSurface(fl)
	mesh.PartName = "hero-flute"

	liner := func(name string, y float64) kernel.Descriptor {
		return kernel.Descriptor{
			Name:          name,
			Kind:          kernel.GeometryBox,
			Extent:        [3]float64{o.Length, o.Liner, o.Width},
			Material:      MaterialHeroLiner,
			Transform:     kernel.Transform{Position: [3]float64{0, y, 0}},
			CastShadow:    true,
			ReceiveShadow: true,
		}
	}
	h.layers = [3]kernel.Descriptor{
		liner("hero-top-liner", h.base[0]),
		{
			Name:       "hero-flute",
			Kind:       kernel.GeometryMesh,
			Mesh:       mesh,
			Material:   MaterialHeroFlute,
			CastShadow: true,
		},
		liner("hero-bottom-liner", h.base[2]),
	}
}

// ID identifies the instance.
func (h *Hero) ID() string { return h.id.String() }

// Camera exposes the interaction controller for pointer input.
func (h *Hero) Camera() *camera.Controller { return h.cam }

// Timeline exposes the explode animation state.
func (h *Hero) Timeline() *timeline.Timeline { return h.tl }

// SetMobile switches layouts. Entering mobile kills a running explode and
// snaps the layers back; leaving it schedules the next run.
func (h *Hero) SetMobile(mobile bool) {
	switch {
	case mobile && !h.mobile:
		h.tl.Kill()
	case !mobile && h.mobile:
		h.tl.Schedule()
	}
	h.mobile = mobile
}

// Mobile reports the current layout.
func (h *Hero) Mobile() bool { return h.mobile }

// SetVisible pauses the hero while its page is hidden.
func (h *Hero) SetVisible(visible bool) { h.visible = visible }

// Advance moves the camera and the explode timeline by dt seconds. A
// hidden hero does not advance.
func (h *Hero) Advance(dt float64) int {
	if !h.visible {
		return 0
	}
	h.tl.SetInteracting(h.cam.Interacting())
	h.cam.PauseAutoRotate(h.tl.Exploded())
	n := h.cam.Advance(dt)
	h.tl.Advance(dt)
	return n
}

// CurrentTransform returns the camera state for this frame.
func (h *Hero) CurrentTransform() camera.Transform { return h.cam.CurrentTransform() }

// Descriptors returns the three layers at the current separation.
func (h *Hero) Descriptors() []kernel.Descriptor {
	sep := h.tl.Separation() * h.opts.Gap
	out := make([]kernel.Descriptor, len(h.layers))
	copy(out, h.layers[:])
	out[0].Transform.Position[1] = h.base[0] + sep
	out[2].Transform.Position[1] = h.base[2] - sep
	return out
}

// Labels pins the layer names to the right of each layer. Mobile layouts
// show no labels.
func (h *Hero) Labels() []kernel.LabelAnchor {
	if h.mobile {
		return nil
	}
	ds := h.Descriptors()
	out := make([]kernel.LabelAnchor, len(ds))
	for i, d := range ds {
		p := d.Transform.Position
		p[0] += h.opts.LabelOffset
		out[i] = kernel.LabelAnchor{Text: h.names[i], Position: p, Class: "hero-3d-label"}
	}
	return out
}

// LabelOpacity is how visible the labels are this frame.
func (h *Hero) LabelOpacity() float64 {
	if h.mobile {
		return 0
	}
	return h.tl.LabelOpacity()
}

// Outline returns the edges of the collapsed stack.
func (h *Hero) Outline() []annotate.Line {
	o := h.opts
	return annotate.Outline(o.Length, o.Width, 2*o.Liner+o.Flute, 1)
}

// Materials returns the hero palette.
func (h *Hero) Materials() []kernel.Material {
	return []kernel.Material{
		{Name: MaterialHeroLiner, Color: "#C4A86B", Roughness: 0.8, Opacity: 1},
		{Name: MaterialHeroFlute, Color: "#D4C49A", Roughness: 0.9, Opacity: 1},
		{Name: MaterialOutline, Color: "#9B8560", Roughness: 1, Opacity: 1},
	}
}
