package embed

import "math"

const (
	curveSamples = 300
	curveIters   = 200
)

// fitCurve finds a, b such that 1/(1 + a·x^(2b)) best matches, in least
// squares, the target curve that is 1 below minDist and decays as
// exp(−(x−minDist)/spread) beyond it, sampled on [0, 3·spread].
//
// Levenberg–Marquardt from (1, 1); a and b stay positive.
func fitCurve(spread, minDist float64) (a, b float64) {
	xs := make([]float64, curveSamples)
	ys := make([]float64, curveSamples)
	var i int
	for i = 0; i < curveSamples; i++ {
		xs[i] = 3 * spread * float64(i) / float64(curveSamples-1)
		if xs[i] < minDist {
			ys[i] = 1
		} else {
			ys[i] = math.Exp(-(xs[i] - minDist) / spread)
		}
	}

	sse := func(a, b float64) float64 {
		var s, r float64
		for i := range xs {
			r = ys[i] - 1/(1+a*math.Pow(xs[i], 2*b))
			s += r * r
		}
		return s
	}

	a, b = 1, 1
	cur := sse(a, b)
	lambda := 1e-3

	var (
		it                 int
		u, f, den, r       float64
		ja, jb             float64
		haa, hab, hbb      float64
		ga, gb             float64
		da, db, det, na, nb float64
		next               float64
	)
	for it = 0; it < curveIters; it++ {
		haa, hab, hbb, ga, gb = 0, 0, 0, 0, 0
		for i = range xs {
			if xs[i] == 0 {
				continue // f ≡ 1 and both partials vanish
			}
			u = math.Pow(xs[i], 2*b)
			den = 1 + a*u
			f = 1 / den
			r = ys[i] - f
			ja = -u / (den * den)
			jb = -2 * a * u * math.Log(xs[i]) / (den * den)
			haa += ja * ja
			hab += ja * jb
			hbb += jb * jb
			ga += ja * r
			gb += jb * r
		}

		// (JᵀJ + λ·diag(JᵀJ))·δ = Jᵀr, retried with growing λ until SSE drops.
		for {
			det = (haa*(1+lambda))*(hbb*(1+lambda)) - hab*hab
			if det == 0 || math.IsNaN(det) {
				return a, b
			}
			da = (ga*hbb*(1+lambda) - gb*hab) / det
			db = (gb*haa*(1+lambda) - ga*hab) / det
			na, nb = a+da, b+db
			if na > 0 && nb > 0 {
				if next = sse(na, nb); next < cur {
					break
				}
			}
			lambda *= 10
			if lambda > 1e12 {
				return a, b
			}
		}
		if cur-next < 1e-14*cur {
			a, b = na, nb
			break
		}
		a, b, cur = na, nb, next
		lambda = math.Max(lambda/10, 1e-12)
	}

	return a, b
}
