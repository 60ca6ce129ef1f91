// Package strength scores a carton's relative strength from its ply and
// size, and suggests a ply for a given product weight.
package strength

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/artienterprises/cartonview/pkg/ply"
)

// MaxReferenceVolume is the volume of the largest carton the default
// slider limits allow, in cubic millimeters.
const MaxReferenceVolume = 1000.0 * 800.0 * 800.0

// PenaltyWeight is the score lost by a carton of the reference volume.
const PenaltyWeight = 25.0

// Score bounds.
const (
	MinScore = 5.0
	MaxScore = 100.0
)

// Classification thresholds, inclusive upper bounds.
const (
	LowMax    = 33.0
	MediumMax = 66.0
)

// Label classifies a score.
type Label string

const (
	Low    Label = "Low"
	Medium Label = "Medium"
	High   Label = "High"
)

// Result is a strength read-out for the meter widget.
type Result struct {
	Score float64 `json:"score"`
	Label Label   `json:"label"`
}

// Classify maps a score onto Low, Medium or High.
func Classify(score float64) Label {
	switch {
	case score <= LowMax:
		return Low
	case score <= MediumMax:
		return Medium
	default:
		return High
	}
}

// Penalty returns the size penalty for the given dimensions in millimeters
// against MaxReferenceVolume.
func Penalty(length, width, height float64) float64 {
	return PenaltyFor(length, width, height, MaxReferenceVolume)
}

// PenaltyFor returns the size penalty against refVolume, the volume of the
// largest configurable carton.
func PenaltyFor(length, width, height, refVolume float64) float64 {
	if !(refVolume > 0) {
		panic(fmt.Sprintf("strength: reference volume must be positive, got %v", refVolume))
	}
	return length * width * height / refVolume * PenaltyWeight
}

// Compute scores a carton against MaxReferenceVolume. It panics on an
// unknown ply.
func Compute(p ply.Ply, length, width, height float64) Result {
	return ComputeFor(p, length, width, height, MaxReferenceVolume)
}

// ComputeFor scores a carton against refVolume, normally the product of
// the slider maximums in use. It panics on an unknown ply or a
// non-positive refVolume.
func ComputeFor(p ply.Ply, length, width, height, refVolume float64) Result {
	prof := ply.MustLookup(p)
	score := lo.Clamp(prof.BaseScore-PenaltyFor(length, width, height, refVolume), MinScore, MaxScore)
	return Result{Score: score, Label: Classify(score)}
}

// Percent returns the score rounded for the meter bar.
func (r Result) Percent() int {
	return int(r.Score + 0.5)
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%d%%)", r.Label, r.Percent())
}
