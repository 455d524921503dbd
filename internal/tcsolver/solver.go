// Public domain.

// Package tcsolver implements the twilight angle calibration algorithm.
//
// Two free parameters, the dawn and dusk solar depression angles, are
// fitted independently to field observed clock times by weighted least
// squares.  The predicted crossing time is monotone in the angle for any
// fixed date and location, so each one dimensional loss is unimodal
// whenever the observations have any spread in date or latitude, and a
// derivative free golden section search converges on it.
package tcsolver

import (
	"errors"
	"math"

	"github.com/soniakeys/twical/internal/tcobs"
	"github.com/soniakeys/twical/internal/tcsolar"
	"github.com/soniakeys/unit"
)

// ErrInsufficient is returned by Calibrate when neither angle is
// identifiable: both the dawn and the dusk subsets have fewer than two
// observations.
var ErrInsufficient = errors.New("insufficient calibration data")

// Options holds calibration parameters.  The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	InitialDawn, InitialDusk float64 // degrees, reported for an unfit angle
	DawnMin, DawnMax         float64 // dawn search bracket, degrees
	DuskMin, DuskMax         float64 // dusk search bracket, degrees
	MaxIter                  int
	Tol                      float64 // bracket width convergence, degrees
}

// DefaultOptions returns the standard calibration parameters.
func DefaultOptions() Options {
	return Options{
		InitialDawn: 15, InitialDusk: 15,
		DawnMin: 10, DawnMax: 22,
		DuskMin: 10, DuskMax: 22,
		MaxIter: 200,
		Tol:     1e-5,
	}
}

// Residual holds the signed prediction errors for one observation, in
// minutes.  Positive means predicted later than observed.  The OK flags
// are false where the observation had no time recorded or where the
// prediction had no crossing (polar day or night).
type Residual struct {
	Dawn, Dusk     float64
	DawnOK, DuskOK bool
}

// ScoreResult is the return type of Score.
type ScoreResult struct {
	RmsMinutes float64 // weighted, both prayers combined
	DawnBias   float64 // weighted mean dawn residual, minutes
	DuskBias   float64 // weighted mean dusk residual, minutes
	Residuals  []Residual
}

// CalibrationResult is the return type of Calibrate.
type CalibrationResult struct {
	DawnAngle, DuskAngle unit.Angle
	RmsMinutes           float64
	EffectiveObs         float64 // dual records count 1, single records .5
	Residuals            []Residual
}

// weight is the effective weight of an observation.  The zero value of
// the Weight field means the default weight of 1, so observations
// constructed without setting it count fully.
func weight(o tcobs.Observation) float64 {
	if o.Weight == 0 {
		return 1
	}
	return o.Weight
}

// Score evaluates a fixed angle pair against a set of observations.
//
// Observations missing a time, and observations where the sun never
// reaches the angle on the date, contribute nothing to the aggregates
// for that prayer.  An empty or fully excluded input yields RMS and
// biases of zero by convention, never NaN.  The residual list is
// positionally aligned with obs.
func Score(obs []tcobs.Observation, dawnAngle, duskAngle float64) *ScoreResult {
	r := &ScoreResult{Residuals: make([]Residual, len(obs))}
	var sumSq, wTotal float64
	var dawnSum, dawnW, duskSum, duskW float64
	for i, o := range obs {
		w := weight(o)
		if o.Dawn.Valid {
			p := tcsolar.PredictDawn(o.Year, o.Month, o.Day,
				o.Lat, o.Lng, o.TZ, dawnAngle)
			if !math.IsNaN(p) {
				m := (p - o.Dawn.Hours) * 60
				r.Residuals[i].Dawn = m
				r.Residuals[i].DawnOK = true
				sumSq += w * m * m
				wTotal += w
				dawnSum += w * m
				dawnW += w
			}
		}
		if o.Dusk.Valid {
			p := tcsolar.PredictDusk(o.Year, o.Month, o.Day,
				o.Lat, o.Lng, o.TZ, duskAngle)
			if !math.IsNaN(p) {
				m := (p - o.Dusk.Hours) * 60
				r.Residuals[i].Dusk = m
				r.Residuals[i].DuskOK = true
				sumSq += w * m * m
				wTotal += w
				duskSum += w * m
				duskW += w
			}
		}
	}
	if wTotal > 0 {
		r.RmsMinutes = math.Sqrt(sumSq / wTotal)
	}
	if dawnW > 0 {
		r.DawnBias = dawnSum / dawnW
	}
	if duskW > 0 {
		r.DuskBias = duskSum / duskW
	}
	return r
}

// Calibrate fits the dawn and dusk depression angles to a set of
// observations.
//
// The two angles are fitted independently, each by golden section
// search over its configured bracket.  A subset with fewer than two
// observations is not fit; its angle is reported as the initial guess
// from opt.  If both subsets are that small, ErrInsufficient is
// returned.  Final residuals and RMS are computed against every input
// observation, not just the fitting subsets.
func Calibrate(obs []tcobs.Observation, opt Options) (*CalibrationResult, error) {
	var dawnObs, duskObs []tcobs.Observation
	for _, o := range obs {
		if o.Dawn.Valid {
			dawnObs = append(dawnObs, o)
		}
		if o.Dusk.Valid {
			duskObs = append(duskObs, o)
		}
	}
	if len(dawnObs) < 2 && len(duskObs) < 2 {
		return nil, ErrInsufficient
	}
	dawn := opt.InitialDawn
	if len(dawnObs) >= 2 {
		dawn = minimize(func(a float64) float64 {
			return dawnLoss(dawnObs, a)
		}, opt.DawnMin, opt.DawnMax, opt.Tol, opt.MaxIter)
	}
	dusk := opt.InitialDusk
	if len(duskObs) >= 2 {
		dusk = minimize(func(a float64) float64 {
			return duskLoss(duskObs, a)
		}, opt.DuskMin, opt.DuskMax, opt.Tol, opt.MaxIter)
	}
	sc := Score(obs, dawn, dusk)
	return &CalibrationResult{
		DawnAngle:    unit.AngleFromDeg(dawn),
		DuskAngle:    unit.AngleFromDeg(dusk),
		RmsMinutes:   sc.RmsMinutes,
		EffectiveObs: float64(len(dawnObs)+len(duskObs)) * .5,
		Residuals:    sc.Residuals,
	}, nil
}

// dawnLoss is the weighted sum of squared dawn residuals, in minutes
// squared.  Polar non-crossings contribute nothing.
func dawnLoss(obs []tcobs.Observation, angle float64) float64 {
	var ss float64
	for _, o := range obs {
		p := tcsolar.PredictDawn(o.Year, o.Month, o.Day,
			o.Lat, o.Lng, o.TZ, angle)
		if math.IsNaN(p) {
			continue
		}
		m := (p - o.Dawn.Hours) * 60
		ss += weight(o) * m * m
	}
	return ss
}

func duskLoss(obs []tcobs.Observation, angle float64) float64 {
	var ss float64
	for _, o := range obs {
		p := tcsolar.PredictDusk(o.Year, o.Month, o.Day,
			o.Lat, o.Lng, o.TZ, angle)
		if math.IsNaN(p) {
			continue
		}
		m := (p - o.Dusk.Hours) * 60
		ss += weight(o) * m * m
	}
	return ss
}
