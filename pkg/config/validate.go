package config

import (
	"fmt"

	"github.com/artienterprises/cartonview/pkg/ply"
)

// Severity indicates whether a finding blocks a rebuild.
type Severity int

const (
	SeverityError   Severity = iota // blocks rebuild
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes one problem with a Configuration.
type ValidationError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Field, e.Message)
}

// Validate checks a whole Configuration against s and returns every
// problem found. An empty slice means c is safe to build. Used for
// configurations that did not come through the setters, such as scripts
// and decoded requests.
func Validate(c Configuration, s Settings) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateRange("length", c.Length, s.Limits.Length)...)
	errs = append(errs, validateRange("width", c.Width, s.Limits.Width)...)
	errs = append(errs, validateRange("height", c.Height, s.Limits.Height)...)

	prof, ok := ply.Lookup(c.Ply)
	if !ok {
		errs = append(errs, ValidationError{
			Field:    "ply",
			Message:  fmt.Sprintf("ply %d is not one of 3, 5, 7", int(c.Ply)),
			Severity: SeverityError,
		})
	}
	if !c.Unit.Valid() {
		errs = append(errs, ValidationError{
			Field:    "unit",
			Message:  fmt.Sprintf("unit %q is not mm or in", string(c.Unit)),
			Severity: SeverityError,
		})
	}
	if ok {
		errs = append(errs, validateWall(c, prof, s.WallExaggeration)...)
	}
	return errs
}

func validateRange(field string, v float64, r Range) []ValidationError {
	if r.Contains(v) {
		return nil
	}
	return []ValidationError{{
		Field:    field,
		Message:  fmt.Sprintf("%g mm is outside [%g, %g]", v, r.Min, r.Max),
		Severity: SeverityError,
	}}
}

// validateWall rejects cartons too small for their walls: the side panels
// are inset by one wall on each end and would collapse.
func validateWall(c Configuration, prof ply.Profile, exaggeration float64) []ValidationError {
	wall := prof.Thickness * exaggeration
	limit := min(c.Length, c.Width, c.Height)
	if 2*wall < limit {
		return nil
	}
	return []ValidationError{{
		Field:    "ply",
		Message:  fmt.Sprintf("%s walls (%.1f mm drawn) do not fit a %g mm side", prof.Ply, wall, limit),
		Severity: SeverityError,
	}}
}

// HasErrors reports whether any finding is blocking.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
