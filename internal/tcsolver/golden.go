// Public domain.

package tcsolver

// invPhi = 1/φ, the golden section ratio.
const invPhi = .6180339887498949

// minimize performs golden section search for a minimum of f on [a, b].
//
// The bracket shrinks by invPhi each iteration, stopping when its width
// is within tol or after maxIter iterations, whichever comes first.  The
// returned abscissa is the final bracket midpoint.  For a unimodal f the
// search cannot diverge; for a flat f it settles near the midpoint of
// the initial bracket.
func minimize(f func(float64) float64, a, b, tol float64, maxIter int) float64 {
	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1 := f(x1)
	f2 := f(x2)
	for i := 0; i < maxIter && b-a > tol; i++ {
		if f1 > f2 {
			a, x1, f1 = x1, x2, f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		} else {
			b, x2, f2 = x2, x1, f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		}
	}
	return (a + b) * .5
}
