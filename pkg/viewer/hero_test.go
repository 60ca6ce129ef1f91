package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artienterprises/cartonview/pkg/camera"
	"github.com/artienterprises/cartonview/pkg/kernel"
	"github.com/artienterprises/cartonview/pkg/timeline"
)

const frame = 1.0 / 60

func newHero(mobile bool) *Hero {
	return NewHero(camera.HeroSettings(), timeline.DefaultSettings(), DefaultHeroOptions(), mobile)
}

// run advances h by n frames, one at a time.
func run(h *Hero, n int) {
	for i := 0; i < n; i++ {
		h.Advance(frame)
	}
}

func TestHeroStack(t *testing.T) {
	h := newHero(false)
	ds := h.Descriptors()
	require.Len(t, ds, 3)
	assert.Equal(t, kernel.GeometryBox, ds[0].Kind)
	assert.Equal(t, kernel.GeometryMesh, ds[1].Kind)
	assert.InDelta(t, 0.1, ds[0].Transform.Position[1], 1e-12)
	assert.InDelta(t, -0.1, ds[2].Transform.Position[1], 1e-12)
	assert.Len(t, h.Outline(), 12)
	assert.Len(t, h.Materials(), 3)

	labels := h.Labels()
	require.Len(t, labels, 3)
	assert.Equal(t, "Outer Liner", labels[0].Text)
	assert.Equal(t, "Inner Liner", labels[2].Text)
	assert.InDelta(t, 1.0, labels[1].Position[0], 1e-12)
}

func TestHeroAutoRotates(t *testing.T) {
	h := newHero(false)
	before := h.CurrentTransform().Yaw
	run(h, 60)
	assert.Greater(t, h.CurrentTransform().Yaw, before)
}

func TestHeroPeriodicExplode(t *testing.T) {
	h := newHero(false)
	run(h, 900)
	assert.Equal(t, timeline.Expanding, h.Timeline().State())
	run(h, 48)
	assert.Equal(t, timeline.Held, h.Timeline().State())

	ds := h.Descriptors()
	assert.InDelta(t, 0.1+0.45, ds[0].Transform.Position[1], 1e-9)
	assert.InDelta(t, -0.1-0.45, ds[2].Transform.Position[1], 1e-9)
	assert.Equal(t, 1.0, h.LabelOpacity())

	// Auto-rotation pauses while exploded.
	yaw, _, _ := h.Camera().Targets()
	run(h, 10)
	yaw2, _, _ := h.Camera().Targets()
	assert.Equal(t, yaw, yaw2)
}

func TestHeroDefersWhileInteracting(t *testing.T) {
	h := newHero(false)
	h.Camera().SetHover(true)
	run(h, 900)
	assert.Equal(t, timeline.Collapsed, h.Timeline().State())
	h.Camera().SetHover(false)
	run(h, 179)
	assert.Equal(t, timeline.Collapsed, h.Timeline().State())
	run(h, 1)
	assert.Equal(t, timeline.Expanding, h.Timeline().State())
}

func TestHeroMobileKillsExplode(t *testing.T) {
	h := newHero(false)
	run(h, 900+48)
	require.True(t, h.Timeline().Exploded())

	h.SetMobile(true)
	assert.False(t, h.Timeline().Exploded())
	assert.Zero(t, h.LabelOpacity())
	assert.Nil(t, h.Labels())
	assert.InDelta(t, 0.1, h.Descriptors()[0].Transform.Position[1], 1e-12)

	run(h, 2000)
	assert.Equal(t, timeline.Collapsed, h.Timeline().State())

	h.SetMobile(false)
	run(h, 900)
	assert.Equal(t, timeline.Expanding, h.Timeline().State())
}

func TestHeroStartsIdleOnMobile(t *testing.T) {
	h := newHero(true)
	assert.True(t, h.Mobile())
	run(h, 2000)
	assert.False(t, h.Timeline().Exploded())
}

func TestHeroHiddenDoesNotAdvance(t *testing.T) {
	h := newHero(false)
	h.SetVisible(false)
	before := h.CurrentTransform()
	assert.Zero(t, h.Advance(1))
	assert.Equal(t, before, h.CurrentTransform())
	h.SetVisible(true)
	assert.Equal(t, 1, h.Advance(frame))
}

func TestHeroFluteSharedGenerator(t *testing.T) {
	h := newHero(false)
	m := h.Descriptors()[1].Mesh
	require.NotNil(t, m)
	// (rows+1) * (cols+1) grid from the shared flute generator.
	assert.Equal(t, 7*41, m.VertexCount())
}
