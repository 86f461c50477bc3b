package animation

import (
	"math"
	"time"
)

// solveEpsilon returns the bezier solver tolerance for an animation of the
// given iteration duration. The longer the animation, the more precision the
// timing function needs to avoid visible discontinuities; short animations
// get a looser tolerance so the solver does not burn iterations on frames
// nobody can distinguish.
func solveEpsilon(duration time.Duration) float64 {
	secs := duration.Seconds()
	if secs <= 0 {
		return 1e-5
	}
	return 1.0 / (200.0 * secs)
}

// solveBezier evaluates a CSS cubic-bezier timing function at input fraction
// t. The curve runs from (0,0) to (1,1) through control points (x1,y1) and
// (x2,y2). Newton-Raphson converges quickly for most inputs; bisection
// guarantees a stable answer in [0,1] when it does not.
func solveBezier(x1, y1, x2, y2, t, epsilon float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	u := t
	for i := 0; i < 8; i++ {
		x := sampleCurve(x1, x2, u) - t
		if math.Abs(x) < epsilon {
			return sampleCurve(y1, y2, clampUnit(u))
		}
		dx := sampleCurveDerivative(x1, x2, u)
		if math.Abs(dx) < 1e-7 {
			break
		}
		u -= x / dx
	}

	lo, hi := 0.0, 1.0
	u = clampUnit(u)
	for i := 0; i < 32; i++ {
		x := sampleCurve(x1, x2, u) - t
		if math.Abs(x) < epsilon {
			break
		}
		if x > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) * 0.5
	}

	return sampleCurve(y1, y2, u)
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
