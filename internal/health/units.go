package health

import "math"

const (
	lbPerKg = 2.20462
	mlPerOz = 29.5735
)

// KgToLb converts kilograms to pounds.
func KgToLb(kg float64) float64 { return kg * lbPerKg }

// LbToKg converts pounds to kilograms.
func LbToKg(lb float64) float64 { return lb / lbPerKg }

// MlToOz converts millilitres to US fluid ounces.
func MlToOz(ml float64) float64 { return ml / mlPerOz }

// OzToMl converts US fluid ounces to millilitres.
func OzToMl(oz float64) float64 { return oz * mlPerOz }

// CmToM converts centimetres to metres.
func CmToM(cm float64) float64 { return cm / 100 }

// SafeDiv returns a/b, or 0 when b is zero or the quotient is not finite.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

// SafePercent returns round(100*part/whole), 0 for a zero or non-finite whole.
func SafePercent(part, whole float64) float64 {
	return Round(100 * SafeDiv(part, whole))
}

// Round rounds half up to the nearest integer (2.5 → 3, -2.5 → -2).
func Round(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x + 0.5)
}

// Round1 rounds half up to one decimal place.
func Round1(x float64) float64 {
	return Round(x*10) / 10
}

// Clamp bounds x to [lo, hi]. NaN clamps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
