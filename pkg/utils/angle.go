// Package utils provides angle and time helpers shared across the Jyotish
// engines: longitude normalization, Julian Day conversions, and degree
// formatting.
package utils

import "math"

// Norm360 normalizes an angle in degrees to [0,360).
func Norm360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// AngularDistance returns the smaller separation between two longitudes,
// in [0,180].
func AngularDistance(a, b float64) float64 {
	d := math.Abs(Norm360(a) - Norm360(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Elongation returns the longitude of b measured forward from a, in [0,360).
func Elongation(a, b float64) float64 {
	return Norm360(b - a)
}
