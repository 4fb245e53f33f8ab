package embed

import (
	"context"
	"math"
	"math/rand"

	"github.com/katalvlaran/sonicpath/distance"
)

const (
	gradClip     = 4.0
	repulseShift = 1e-3
)

// clip bounds a gradient component to [−4, 4].
func clip(x float64) float64 {
	if x > gradClip {
		return gradClip
	}
	if x < -gradClip {
		return -gradClip
	}

	return x
}

// sgdSchedule holds the per-edge sampling schedule: an edge of weight w is
// sampled every wmax/w epochs, and repulsive samples every
// (wmax/w)/negativeRate epochs.
type sgdSchedule struct {
	edges             []edge
	epochsPerSample   []float64
	nextSample        []float64
	epochsPerNegative []float64
	nextNegative      []float64
}

// newSchedule drops edges too weak to be sampled within nEpochs.
func newSchedule(edges []edge, nEpochs, negativeRate int) *sgdSchedule {
	var wmax float64
	for _, e := range edges {
		wmax = math.Max(wmax, e.weight)
	}
	s := &sgdSchedule{}
	if wmax == 0 {
		return s
	}
	floor := wmax / float64(nEpochs)
	for _, e := range edges {
		if e.weight < floor {
			continue
		}
		eps := wmax / e.weight
		s.edges = append(s.edges, e)
		s.epochsPerSample = append(s.epochsPerSample, eps)
		s.nextSample = append(s.nextSample, eps)
		neg := math.Inf(1)
		if negativeRate > 0 {
			neg = eps / float64(negativeRate)
		}
		s.epochsPerNegative = append(s.epochsPerNegative, neg)
		s.nextNegative = append(s.nextNegative, neg)
	}

	return s
}

// optimizeLayout runs nEpochs of SGD in place on y.
//
// Attraction along a sampled edge (j,k) at squared distance d² moves both ends:
//
//	g = −2ab·d^(2(b−1)) / (1 + a·d^(2b))
//
// Repulsion from a random point k moves only j:
//
//	g = 2b / ((0.001 + d²)·(1 + a·d^(2b)))
//
// Every component is clipped to [−4, 4] and scaled by α = lr·(1 − epoch/nEpochs).
// ctx is checked once per epoch.
func optimizeLayout(ctx context.Context, y [][]float64, s *sgdSchedule, a, b, lr float64, nEpochs int, rng *rand.Rand) error {
	n := len(y)
	dim := len(y[0])

	var (
		epoch, e, p, d, j, k, nNeg int
		alpha, dist2, coeff, grad  float64
		cur, other                 []float64
	)
	for epoch = 0; epoch < nEpochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		alpha = lr * (1 - float64(epoch)/float64(nEpochs))

		for e = range s.edges {
			if s.nextSample[e] > float64(epoch) {
				continue
			}
			j, k = s.edges[e].head, s.edges[e].tail
			cur, other = y[j], y[k]

			dist2 = distance.SquaredL2(cur, other)
			coeff = 0
			if dist2 > 0 {
				coeff = -2 * a * b * math.Pow(dist2, b-1) / (a*math.Pow(dist2, b) + 1)
			}
			for d = 0; d < dim; d++ {
				grad = clip(coeff * (cur[d] - other[d]))
				cur[d] += grad * alpha
				other[d] -= grad * alpha
			}
			s.nextSample[e] += s.epochsPerSample[e]

			if math.IsInf(s.epochsPerNegative[e], 1) {
				continue
			}
			nNeg = int((float64(epoch) - s.nextNegative[e]) / s.epochsPerNegative[e])
			for p = 0; p < nNeg; p++ {
				k = rng.Intn(n)
				if k == j {
					continue
				}
				other = y[k]
				dist2 = distance.SquaredL2(cur, other)
				coeff = 0
				if dist2 > 0 {
					coeff = 2 * b / ((repulseShift + dist2) * (a*math.Pow(dist2, b) + 1))
				}
				for d = 0; d < dim; d++ {
					if coeff > 0 {
						grad = clip(coeff * (cur[d] - other[d]))
					} else {
						grad = gradClip
					}
					cur[d] += grad * alpha
				}
			}
			if nNeg > 0 {
				s.nextNegative[e] += float64(nNeg) * s.epochsPerNegative[e]
			}
		}
	}

	return nil
}
