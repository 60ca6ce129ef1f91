// Package ply is the static catalog of corrugated wall constructions.
// Every profile is immutable; callers get copies, never pointers into the table.
package ply

import (
	"fmt"
	"strconv"
	"strings"
)

// Ply identifies a wall construction by its layer count.
type Ply int

const (
	Three Ply = 3 // single wall
	Five  Ply = 5 // double wall
	Seven Ply = 7 // triple wall
)

func (p Ply) String() string {
	return strconv.Itoa(int(p)) + "-ply"
}

// Profile holds the ply-specific constants used by geometry, scoring and read-outs.
type Profile struct {
	Ply            Ply      `json:"ply" yaml:"ply"`
	Label          string   `json:"label" yaml:"label"`
	Thickness      float64  `json:"thickness" yaml:"thickness"` // wall thickness in mm
	CapacityMinKg  float64  `json:"capacityMinKg" yaml:"capacity_min_kg"`
	CapacityMaxKg  float64  `json:"capacityMaxKg" yaml:"capacity_max_kg"`
	Capacity       string   `json:"capacity" yaml:"capacity"`
	LayerSummary   string   `json:"layerSummary" yaml:"layer_summary"`
	LayerNames     []string `json:"layerNames" yaml:"layer_names"`
	LayerColors    []string `json:"layerColors" yaml:"layer_colors"`
	BoxColor       string   `json:"boxColor" yaml:"box_color"`
	BaseScore      float64  `json:"baseScore" yaml:"base_score"`
	RecommendedUse string   `json:"recommendedUse" yaml:"recommended_use"`
}

// LayerCount is the number of liner and flute layers, always odd.
func (p Profile) LayerCount() int {
	return int(p.Ply)
}

// IsFlute reports whether layer i is a fluted medium. Liners sit at even
// indices, flutes at odd ones.
func (p Profile) IsFlute(i int) bool {
	return i%2 == 1
}

// LayerName returns the catalog name for layer i, or "Layer N" when the
// catalog runs short.
func (p Profile) LayerName(i int) string {
	if i >= 0 && i < len(p.LayerNames) {
		return p.LayerNames[i]
	}
	return fmt.Sprintf("Layer %d", i+1)
}

// LayerColor returns the display color for layer i, falling back to the box color.
func (p Profile) LayerColor(i int) string {
	if i >= 0 && i < len(p.LayerColors) {
		return p.LayerColors[i]
	}
	return p.BoxColor
}

var catalog = map[Ply]Profile{
	Three: {
		Ply:           Three,
		Label:         "3-Ply (Single Wall)",
		Thickness:     3.2,
		CapacityMinKg: 5,
		CapacityMaxKg: 15,
		Capacity:      "5 - 15 kg",
		LayerSummary:  "Outer + Flute + Inner",
		LayerNames:    []string{"Outer Liner", "Flute", "Inner Liner"},
		LayerColors:   []string{"#C4A86B", "#D4C49A", "#A8824A"},
		BoxColor:      "#C4A86B",
		BaseScore:     30,
		RecommendedUse: "Light e-commerce parcels, retail packs and " +
			"local courier shipments",
	},
	Five: {
		Ply:           Five,
		Label:         "5-Ply (Double Wall)",
		Thickness:     6.1,
		CapacityMinKg: 12,
		CapacityMaxKg: 40,
		Capacity:      "12 - 40 kg",
		LayerSummary:  "Outer + Flute + Mid + Flute + Inner",
		LayerNames:    []string{"Outer Liner", "Flute (B)", "Middle Liner", "Flute (C)", "Inner Liner"},
		LayerColors:   []string{"#C4A86B", "#D4C49A", "#B89A5A", "#D4C49A", "#A8824A"},
		BoxColor:      "#B8955A",
		BaseScore:     60,
		RecommendedUse: "Appliances, glassware and long-distance " +
			"shipping of medium loads",
	},
	Seven: {
		Ply:           Seven,
		Label:         "7-Ply (Triple Wall)",
		Thickness:     10,
		CapacityMinKg: 50,
		CapacityMaxKg: 200,
		Capacity:      "50+ kg",
		LayerSummary:  "Outer + 3 Flutes + 3 Liners",
		LayerNames: []string{
			"Outer Liner", "Flute (A)", "Liner", "Flute (B)",
			"Liner", "Flute (C)", "Inner Liner",
		},
		LayerColors: []string{
			"#C4A86B", "#D4C49A", "#B89A5A", "#D4C49A",
			"#B89A5A", "#D4C49A", "#A8824A",
		},
		BoxColor:       "#A8824A",
		BaseScore:      90,
		RecommendedUse: "Industrial machinery, export cargo and heavy bulk goods",
	},
}

// All returns the supported plies in ascending order.
func All() []Ply {
	return []Ply{Three, Five, Seven}
}

// Lookup returns the profile for p.
func Lookup(p Ply) (Profile, bool) {
	prof, ok := catalog[p]
	if !ok {
		return Profile{}, false
	}
	prof.LayerNames = append([]string(nil), prof.LayerNames...)
	prof.LayerColors = append([]string(nil), prof.LayerColors...)
	return prof, true
}

// MustLookup returns the profile for p, or panics. Geometry code uses it
// because the input boundary already rejected unknown plies.
func MustLookup(p Ply) Profile {
	prof, ok := Lookup(p)
	if !ok {
		panic(fmt.Sprintf("ply: no profile for %d", int(p)))
	}
	return prof
}

// Parse accepts "3", "5", "7" with an optional "-ply" suffix.
func Parse(s string) (Ply, error) {
	s = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-ply")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("ply: %q is not a layer count", s)
	}
	p := Ply(n)
	if _, ok := catalog[p]; !ok {
		return 0, fmt.Errorf("ply: unsupported ply %d", n)
	}
	return p, nil
}

// Valid reports whether p is in the catalog.
func (p Ply) Valid() bool {
	_, ok := catalog[p]
	return ok
}
