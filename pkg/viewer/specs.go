package viewer

import (
	"fmt"

	"github.com/artienterprises/cartonview/pkg/annotate"
	"github.com/artienterprises/cartonview/pkg/ply"
)

// Specs are the text read-outs next to the preview.
type Specs struct {
	Label          string `json:"label"`
	Thickness      string `json:"thickness"`
	Capacity       string `json:"capacity"`
	Layers         string `json:"layers"`
	RecommendedUse string `json:"recommendedUse"`
	// Slider values in the display unit, without suffix.
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Unit   string `json:"unit"`
	// Strength meter.
	StrengthLabel   string `json:"strengthLabel"`
	StrengthPercent int    `json:"strengthPercent"`
}

// Specs derives the read-outs from the ply profile and the cached scene.
func (v *Viewer) Specs() Specs {
	c := v.cfg
	prof := ply.MustLookup(c.Ply)
	st := v.scene.Strength
	return Specs{
		Label:           prof.Label,
		Thickness:       fmt.Sprintf("%g mm", prof.Thickness),
		Capacity:        prof.Capacity,
		Layers:          prof.LayerSummary,
		RecommendedUse:  prof.RecommendedUse,
		Length:          annotate.FormatValue(c.Length, c.Unit),
		Width:           annotate.FormatValue(c.Width, c.Unit),
		Height:          annotate.FormatValue(c.Height, c.Unit),
		Unit:            string(c.Unit),
		StrengthLabel:   string(st.Label),
		StrengthPercent: st.Percent(),
	}
}
