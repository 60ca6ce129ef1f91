package annotate

import "github.com/artienterprises/cartonview/pkg/kernel"

// Axis names the measured dimension.
type Axis string

const (
	AxisLength Axis = "length"
	AxisWidth  Axis = "width"
	AxisHeight Axis = "height"
)

// Line is a straight segment in scene space.
type Line struct {
	Axis Axis       `json:"axis"`
	From [3]float64 `json:"from"`
	To   [3]float64 `json:"to"`
}

// Midpoint returns the center of the segment.
func (l Line) Midpoint() [3]float64 {
	return [3]float64{
		(l.From[0] + l.To[0]) / 2,
		(l.From[1] + l.To[1]) / 2,
		(l.From[2] + l.To[2]) / 2,
	}
}

// Options places annotations. Scale converts millimeters to scene units;
// Clearance and TickLength are already in scene units.
type Options struct {
	Scale      float64 `json:"scale" yaml:"scale"`
	Clearance  float64 `json:"clearance" yaml:"clearance"`
	TickLength float64 `json:"tickLength" yaml:"tick_length"`
}

// DefaultOptions matches the viewer's default scene scale.
func DefaultOptions() Options {
	return Options{Scale: 0.005, Clearance: 0.15, TickLength: 0.06}
}

// Set is one full annotation: three lines, two ticks per line and one label
// per line, all in the same axis order.
type Set struct {
	Lines  []Line               `json:"lines"`
	Ticks  []Line               `json:"ticks"`
	Labels []kernel.LabelAnchor `json:"labels"`
}

// Build places the length line along the front-bottom edge, the width line
// along the right-bottom edge and the height line at the front-left corner,
// each pushed out from the body by the clearance. Dimensions are
// millimeters.
func Build(length, width, height float64, u Unit, opts Options) Set {
	hl := length * opts.Scale / 2
	hw := width * opts.Scale / 2
	hh := height * opts.Scale / 2
	c := opts.Clearance

	lines := []Line{
		{Axis: AxisLength, From: [3]float64{-hl, -hh, hw + c}, To: [3]float64{hl, -hh, hw + c}},
		{Axis: AxisWidth, From: [3]float64{hl + c, -hh, hw}, To: [3]float64{hl + c, -hh, -hw}},
		{Axis: AxisHeight, From: [3]float64{-hl - c, -hh, hw + c}, To: [3]float64{-hl - c, hh, hw + c}},
	}
	// Tick direction per line, perpendicular to its axis.
	tickDir := map[Axis]int{AxisLength: 2, AxisWidth: 0, AxisHeight: 0}
	values := map[Axis]float64{AxisLength: length, AxisWidth: width, AxisHeight: height}

	set := Set{
		Lines:  lines,
		Ticks:  make([]Line, 0, 2*len(lines)),
		Labels: make([]kernel.LabelAnchor, 0, len(lines)),
	}
	for _, l := range lines {
		for _, end := range [][3]float64{l.From, l.To} {
			set.Ticks = append(set.Ticks, tick(l.Axis, end, tickDir[l.Axis], opts.TickLength))
		}
		set.Labels = append(set.Labels, kernel.LabelAnchor{
			Text:     FormatDimension(values[l.Axis], u),
			Position: l.Midpoint(),
			Class:    "dim-" + string(l.Axis),
		})
	}
	return set
}

func tick(axis Axis, at [3]float64, dir int, length float64) Line {
	from, to := at, at
	from[dir] -= length / 2
	to[dir] += length / 2
	return Line{Axis: axis, From: from, To: to}
}

// Outline returns the twelve edges of the carton envelope, in scene units.
func Outline(length, width, height, scale float64) []Line {
	hl, hw, hh := length*scale/2, width*scale/2, height*scale/2
	corner := func(sx, sy, sz float64) [3]float64 {
		return [3]float64{sx * hl, sy * hh, sz * hw}
	}
	var edges []Line
	for _, s := range []float64{-1, 1} {
		for _, t := range []float64{-1, 1} {
			edges = append(edges,
				Line{Axis: AxisLength, From: corner(-1, s, t), To: corner(1, s, t)},
				Line{Axis: AxisHeight, From: corner(s, -1, t), To: corner(s, 1, t)},
				Line{Axis: AxisWidth, From: corner(s, t, -1), To: corner(s, t, 1)},
			)
		}
	}
	return edges
}
