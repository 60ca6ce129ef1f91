package strength

import (
	"errors"
	"fmt"

	"github.com/artienterprises/cartonview/pkg/ply"
)

// Shipping describes how the carton travels. Any non-empty value is
// accepted; only ShippingLongDistance changes the suggestion.
type Shipping string

const (
	ShippingLocal        Shipping = "local"
	ShippingStandard     Shipping = "standard"
	ShippingLongDistance Shipping = "longdist"
)

var (
	// ErrWeight is returned for a missing or non-positive product weight.
	ErrWeight = errors.New("strength: product weight must be positive")
	// ErrShipping is returned when no shipping type is given.
	ErrShipping = errors.New("strength: shipping type is required")
)

// Suggestion is the outcome of Recommend.
type Suggestion struct {
	Ply        ply.Ply `json:"ply"`
	PlyLabel   string  `json:"plyLabel"`
	Dimensions string  `json:"dimensions"`
	Margin     string  `json:"margin"`
	// UnderRated is set when the weight exceeds the currently selected
	// ply's rated maximum.
	UnderRated bool `json:"underRated"`
}

// Recommend suggests a ply and an indicative carton size for a product of
// weightKg, and flags whether current is rated for it.
func Recommend(weightKg float64, shipping Shipping, current ply.Ply) (Suggestion, error) {
	if !(weightKg > 0) {
		return Suggestion{}, ErrWeight
	}
	if shipping == "" {
		return Suggestion{}, ErrShipping
	}
	cur, ok := ply.Lookup(current)
	if !ok {
		return Suggestion{}, fmt.Errorf("strength: recommend: unknown ply %d", int(current))
	}

	var s Suggestion
	switch {
	case weightKg <= 5:
		s = Suggestion{Ply: ply.Three, Dimensions: "10 x 8 x 6 inches", Margin: "Good safety margin"}
	case weightKg <= 15:
		if shipping == ShippingLongDistance {
			s = Suggestion{Ply: ply.Five, Margin: "Extra protection for long distance"}
		} else {
			s = Suggestion{Ply: ply.Three, Margin: "Adequate for standard courier"}
		}
		s.Dimensions = "15 x 10 x 10 inches"
	case weightKg <= 40:
		s = Suggestion{Ply: ply.Five, Dimensions: "18 x 12 x 12 inches", Margin: "Suitable for heavy items"}
	default:
		s = Suggestion{Ply: ply.Seven, Dimensions: "22 x 22 x 30 inches", Margin: "Industrial-grade protection"}
	}
	s.PlyLabel = ply.MustLookup(s.Ply).Label
	s.UnderRated = weightKg > cur.CapacityMaxKg
	return s, nil
}
