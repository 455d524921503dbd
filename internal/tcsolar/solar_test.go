// Public domain.

package tcsolar_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	sunrise "github.com/nathan-osman/go-sunrise"
	"github.com/soniakeys/twical/internal/tcsolar"
	"github.com/soniakeys/unit"
)

func ExampleJdn() {
	fmt.Printf("%.0f\n", tcsolar.Jdn(2000, 1, 1))
	// Output:
	// 2451545
}

var jdnTestCases = []struct {
	y, m, d int
	jdn     float64
}{
	{2000, 1, 1, 2451545},
	{2006, 1, 2, 2453738},
	{2024, 6, 21, 2460483},
	{1987, 1, 27, 2446823},
}

func TestJdn(t *testing.T) {
	for _, c := range jdnTestCases {
		if jdn := tcsolar.Jdn(c.y, c.m, c.d); jdn != c.jdn {
			t.Errorf("Jdn(%d, %d, %d) = %f, want %f",
				c.y, c.m, c.d, jdn, c.jdn)
		}
	}
}

func TestPosition(t *testing.T) {
	// declination near the solstices and equinoxes, equation of time
	// near its extremes.  wide tolerances, this is a low precision
	// ephemeris.
	for _, c := range []struct {
		y, m, d          int
		declDeg, eqHours float64
		declTol, eqTol   float64
	}{
		{2024, 6, 21, 23.44, 0, .1, .04},
		{2024, 12, 21, -23.44, 0, .1, .06},
		{2024, 3, 20, 0, 0, .5, .15},
		{2024, 11, 3, -15, .273, 1.5, .02}, // eq of time max ~+16.4 min
		{2024, 2, 11, -14, -.237, 1.5, .02}, // eq of time min ~-14.2 min
	} {
		decl, eq := tcsolar.Position(tcsolar.Jdn(c.y, c.m, c.d))
		if math.Abs(decl.Deg()-c.declDeg) > c.declTol {
			t.Errorf("%d-%02d-%02d decl = %.3f°, want %.3f±%.2f",
				c.y, c.m, c.d, decl.Deg(), c.declDeg, c.declTol)
		}
		if math.Abs(eq-c.eqHours) > c.eqTol {
			t.Errorf("%d-%02d-%02d eq of time = %.4f h, want %.4f±%.3f",
				c.y, c.m, c.d, eq, c.eqHours, c.eqTol)
		}
	}
}

// Far from J2000 the mean longitude series is many whole turns; the
// normalized value must still give a physical declination and a small
// equation of time.
func TestPositionFarEpoch(t *testing.T) {
	for d := 0; d < 365; d += 10 {
		jdn := tcsolar.Jdn(2100, 1, 1) + float64(d)
		decl, eq := tcsolar.Position(jdn)
		if math.Abs(decl.Deg()) > 23.6 {
			t.Errorf("jdn %.0f: decl = %.3f°, out of range", jdn, decl.Deg())
		}
		if math.Abs(eq) > .3 {
			t.Errorf("jdn %.0f: eq of time = %.4f h, out of range", jdn, eq)
		}
	}
}

// Mecca, midsummer.  The depression angle predictions should fall in
// the expected early morning and late evening windows, and deepening
// the angle must move dawn earlier and dusk later.
func TestMecca(t *testing.T) {
	const lat, lng, tz = 21.4225, 39.8262, 3
	dawn15 := tcsolar.PredictDawn(2024, 6, 21, lat, lng, tz, 15)
	dusk15 := tcsolar.PredictDusk(2024, 6, 21, lat, lng, tz, 15)
	if !(dawn15 > 4 && dawn15 < 6) {
		t.Fatalf("dawn at 15° = %.3f h, want in (4, 6)", dawn15)
	}
	if !(dusk15 > 20 && dusk15 < 22.5) {
		t.Fatalf("dusk at 15° = %.3f h, want in (20, 22.5)", dusk15)
	}
	dawn18 := tcsolar.PredictDawn(2024, 6, 21, lat, lng, tz, 18)
	dusk18 := tcsolar.PredictDusk(2024, 6, 21, lat, lng, tz, 18)
	if !(dawn18 < dawn15) {
		t.Errorf("dawn at 18° = %.3f h, not earlier than %.3f", dawn18, dawn15)
	}
	if !(dusk18 > dusk15) {
		t.Errorf("dusk at 18° = %.3f h, not later than %.3f", dusk18, dusk15)
	}
}

func TestMonotone(t *testing.T) {
	// dawn strictly decreasing, dusk strictly increasing in the angle
	const lat, lng, tz = 40.7128, -74.006, -5
	prevDawn := math.Inf(1)
	prevDusk := math.Inf(-1)
	for a := 10.; a <= 22; a += .5 {
		dawn := tcsolar.PredictDawn(2024, 3, 1, lat, lng, tz, a)
		dusk := tcsolar.PredictDusk(2024, 3, 1, lat, lng, tz, a)
		if !(dawn < prevDawn) {
			t.Fatalf("dawn not strictly decreasing at %.1f°", a)
		}
		if !(dusk > prevDusk) {
			t.Fatalf("dusk not strictly increasing at %.1f°", a)
		}
		if !(dawn < dusk) {
			t.Fatalf("dawn %.3f not before dusk %.3f at %.1f°", dawn, dusk, a)
		}
		prevDawn, prevDusk = dawn, dusk
	}
}

func TestPolar(t *testing.T) {
	// Tromsø under the midnight sun.  The sun stays well above -18°;
	// both crossings must come back NaN, not some wrapped time.
	dawn := tcsolar.PredictDawn(2024, 6, 21, 69.65, 18.96, 2, 18)
	dusk := tcsolar.PredictDusk(2024, 6, 21, 69.65, 18.96, 2, 18)
	if !math.IsNaN(dawn) || !math.IsNaN(dusk) {
		t.Fatalf("polar crossing = %v, %v, want NaN, NaN", dawn, dusk)
	}
}

// Cross-check the ephemeris against an independent implementation at
// the standard refracted sunrise altitude.
func TestSunriseCrossCheck(t *testing.T) {
	cases := []struct {
		lat, lng float64
		y        int
		m        time.Month
		d        int
	}{
		{40.7128, -74.006, 2024, time.March, 21},
		{21.4225, 39.8262, 2024, time.June, 21},
		{-33.8688, 151.2093, 2024, time.September, 1},
		{51.5074, -.1278, 2024, time.December, 21},
	}
	for _, c := range cases {
		wantRise, wantSet := sunrise.SunriseSunset(c.lat, c.lng, c.y, c.m, c.d)
		rise, set := tcsolar.RiseSet(tcsolar.Jdn(c.y, int(c.m), c.d),
			c.lat, c.lng, 0, unit.AngleFromDeg(-.833))
		if d := clockDiff(rise, utcHours(wantRise)); d > .05 {
			t.Errorf("%v-%v-%v lat %.2f: rise off by %.1f min",
				c.y, c.m, c.d, c.lat, d*60)
		}
		if d := clockDiff(set, utcHours(wantSet)); d > .05 {
			t.Errorf("%v-%v-%v lat %.2f: set off by %.1f min",
				c.y, c.m, c.d, c.lat, d*60)
		}
	}
}

// clockDiff compares clock hours modulo 24.  The predicted time can
// fall outside [0, 24) for longitudes far from the UTC meridian.
func clockDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 24)
	if d > 12 {
		d = 24 - d
	}
	return d
}

func utcHours(t time.Time) float64 {
	t = t.UTC()
	return float64(t.Hour()) + float64(t.Minute())/60 +
		float64(t.Second())/3600
}
