package math

import (
	m "math"

	"golang.org/x/exp/constraints"
)

const (
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float64 = m.Pi / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float64 = 180.0 / m.Pi
	/** @brief Default tolerance used when comparing matrices and vectors. */
	K_FLOAT_EPSILON float64 = 1e-9
)

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Ptr returns a pointer to v. Handy for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}

/**
 * @brief Converts provided degrees to radians.
 */
func DegToRad(degrees float64) float64 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 */
func RadToDeg(radians float64) float64 {
	return radians * K_RAD2DEG_MULTIPLIER
}

func kabs(x float64) float64 {
	return m.Abs(x)
}
