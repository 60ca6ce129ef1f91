// Package annotate places dimension lines, end ticks and labels around the
// carton, and formats measurements for display. Stored dimensions are
// always millimeters; the unit only changes the label text.
package annotate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is a display unit.
type Unit string

const (
	UnitMM Unit = "mm"
	UnitIn Unit = "in"
)

// MMPerInch converts millimeters to inches.
const MMPerInch = 25.4

// ParseUnit accepts "mm" or "in" in any case.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitMM:
		return UnitMM, nil
	case UnitIn:
		return UnitIn, nil
	}
	return "", fmt.Errorf("annotate: unknown unit %q", s)
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	return u == UnitMM || u == UnitIn
}

// FormatValue renders mm in unit u without a suffix: integer millimeters,
// or inches to one decimal.
func FormatValue(mm float64, u Unit) string {
	if u == UnitIn {
		return strconv.FormatFloat(mm/MMPerInch, 'f', 1, 64)
	}
	return strconv.Itoa(int(math.Round(mm)))
}

// FormatDimension renders mm with its unit suffix, e.g. "300 mm" or "11.8 in".
func FormatDimension(mm float64, u Unit) string {
	if u != UnitIn {
		u = UnitMM
	}
	return FormatValue(mm, u) + " " + string(u)
}
