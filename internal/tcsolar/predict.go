// Public domain.

package tcsolar

import "github.com/soniakeys/unit"

// PredictDawn returns the local clock time at which the sun rises
// through the given depression angle, in fractional hours.
//
// Angle is a positive depression in degrees.  NaN means the sun does
// not reach the depression that day.
func PredictDawn(y, m, d int, lat, lng, tz, angle float64) float64 {
	rise, _ := RiseSet(Jdn(y, m, d), lat, lng, tz, unit.AngleFromDeg(-angle))
	return rise
}

// PredictDusk returns the local clock time at which the sun sets
// through the given depression angle, in fractional hours.
func PredictDusk(y, m, d int, lat, lng, tz, angle float64) float64 {
	_, set := RiseSet(Jdn(y, m, d), lat, lng, tz, unit.AngleFromDeg(-angle))
	return set
}
