package numeric

import (
	"math"
	"strconv"
	"strings"
)

func isInf(f float64, sign int) bool { return math.IsInf(f, sign) }

func absFloat(f float64) float64 { return math.Abs(f) }

func floatSign(f float64) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// magnitudeDigitCount returns the decimal digit count of f (f >= 0, finite),
// i.e. floor(log10(f)) + 1, matching spec.md §4.4's cross-type comparison.
func magnitudeDigitCount(f float64) int {
	if f == 0 {
		return 1
	}
	return int(math.Floor(math.Log10(f))) + 1
}

// FormatFloat renders a float the way Python's format_float_short does
// (spec.md §6.3): exact integers get a trailing ".0", magnitudes outside
// [1e-4, 1e16) use scientific notation, and the special values render as
// inf/-inf/nan.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatComplexComponent renders one real/imaginary component the way
// CPython's complex repr does: same special-value and scientific-notation
// rules as FormatFloat, but a whole-number component is printed without a
// trailing ".0" (spec.md §8's `(1+2j)*(3-4j)` → `(11+2j)`, not `(11.0+2.0j)`
// — unlike a bare Float, a complex component never forces a decimal point).
func formatComplexComponent(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
