package boids

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Magnitudes on [plainMin, plainMax) print as plain decimals, all others in E-notation.
	plainMin = 1e-3
	plainMax = 1e7
)

// FormatFloat returns the shortest decimal string that round-trips val, always
// carrying a fractional part: 1 prints as "1.0", 1.5 as "1.5". Very large and very
// small magnitudes print as "<mantissa>E<exponent>", e.g. "1.0E7" or "1.5E-4".
// These are the numeric forms downstream gnuplot scripts have always been fed.
func FormatFloat(val float64) string {
	switch {
	case math.IsNaN(val):
		return "NaN"
	case math.IsInf(val, 1):
		return "Infinity"
	case math.IsInf(val, -1):
		return "-Infinity"
	case val == 0:
		if math.Signbit(val) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(val)
	if abs >= plainMin && abs < plainMax {
		return withFraction(strconv.FormatFloat(val, 'f', -1, 64))
	}

	// strconv gives e.g. "1.5e-04"; normalize the exponent.
	sci := strconv.FormatFloat(val, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(sci, "e")
	n, err := strconv.Atoi(exp)
	if err != nil {
		return sci
	}
	return withFraction(mantissa) + "E" + strconv.Itoa(n)
}

func withFraction(s string) string {
	if strings.ContainsRune(s, '.') {
		return s
	}
	return s + ".0"
}

func formatInt(i int) string {
	return strconv.Itoa(i)
}
