// Public domain.

// Package tcsolar computes low precision solar positions and horizon
// crossing times.
//
// Accuracy is on the order of .01 degree in solar longitude, which keeps
// predicted crossing times within a minute or so over a few centuries
// around J2000.  That is plenty for twilight work: atmospheric refraction
// and other fixed systematic offsets are not modeled here at all.  They
// are absorbed into whatever depression angle is later fitted against
// real observations.
package tcsolar

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// Jdn returns the Julian Day Number for a Gregorian calendar date.
//
// The result is integer valued, anchored to UTC noon of the given civil
// date.  Every Gregorian date maps to exactly one JDN.
func Jdn(y, m, d int) float64 {
	// CalendarGregorianToJD anchors integral days at 0h UTC; the
	// conventional day number is anchored at noon.
	return julian.CalendarGregorianToJD(y, m, float64(d)+.5)
}

// Position returns the solar declination and the equation of time for
// the instant of a Julian Day Number.
//
// Equation of time is in hours, positive when true solar noon occurs
// before mean noon.
func Position(jdn float64) (decl unit.Angle, eqTime float64) {
	T := base.J2000Century(jdn)

	// Series constants are in degrees.  To minimize confusion, work in
	// degrees here too, converting to radians only as needed for trig
	// functions.
	l0 := unit.PMod(base.Horner(T, 280.46646, 36000.76983, .0003032), 360)
	ma := base.Horner(T, 357.52911, 35999.05029, -.0001537)
	sm := math.Sin(ma * math.Pi / 180)
	sm2 := math.Sin(2 * ma * math.Pi / 180)
	sm3 := math.Sin(3 * ma * math.Pi / 180)

	// equation of center, apparent longitude with the low precision
	// nutation approximation
	c := base.Horner(T, 1.914602, -.004817, -.000014)*sm +
		(.019993-.000101*T)*sm2 + .000289*sm3
	om := 125.04 - 1934.136*T
	lam := l0 + c - .00569 - .00478*math.Sin(om*math.Pi/180)

	// obliquity of the ecliptic, corrected
	e0 := base.Horner(T, 23+26./60+21.448/3600, -46.815/3600,
		-.00059/3600, .001813/3600)
	eps := unit.AngleFromDeg(e0 + .00256*math.Cos(om*math.Pi/180))

	slam := math.Sin(lam * math.Pi / 180)
	decl = unit.Angle(math.Asin(eps.Sin() * slam))

	// equation of time, Meeus (28.3)
	ecc := base.Horner(T, .016708634, -.000042037, -.0000001267)
	th := eps.Div(2).Tan()
	y2 := th * th
	sl2, cl2 := math.Sincos(2 * l0 * math.Pi / 180)
	sl4 := math.Sin(4 * l0 * math.Pi / 180)
	e := y2*sl2 - 2*ecc*sm + 4*ecc*y2*sm*cl2 - .5*y2*y2*sl4 -
		1.25*ecc*ecc*sm2
	eqTime = e * 180 / math.Pi * 4 / 60 // radians to hours
	return
}

// RiseSet returns the pair of local clock times at which the sun crosses
// a target altitude on the day of a Julian Day Number.
//
// Altitude alt is negative below the horizon.  Latitude is south
// negative, longitude west negative, tz a signed UTC offset in hours.
// Returned times are fractional local hours.
//
// When the sun never reaches the altitude that day, both results are
// NaN.  This is a normal outcome at high latitudes and steep altitudes,
// not an error.
func RiseSet(jdn, lat, lng, tz float64, alt unit.Angle) (rise, set float64) {
	decl, eqTime := Position(jdn)
	sd, cd := decl.Sincos()
	sl, cl := unit.AngleFromDeg(lat).Sincos()
	ch := (alt.Sin() - sl*sd) / (cl * cd)
	if ch < -1 || ch > 1 {
		return math.NaN(), math.NaN()
	}
	h := math.Acos(ch) * 180 / math.Pi
	noon := 12 + tz - lng/15 - eqTime
	return noon - h/15, noon + h/15
}
