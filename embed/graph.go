package embed

import (
	"math"
	"sort"

	"github.com/katalvlaran/sonicpath/distance"
)

const (
	smoothKIters     = 64
	smoothKTolerance = 1e-5
	minKDistScale    = 1e-3
)

// neighbor is one kNN entry.
type neighbor struct {
	index int
	dist  float64
}

// edge is a directed, weighted edge of the fuzzy graph.
type edge struct {
	head, tail int
	weight     float64
}

// nearestNeighbors returns, for every row, its k closest other rows sorted
// by distance (ties broken by index).
//
// Complexity: O(N²·D + N²·log N).
func nearestNeighbors(rows [][]float64, k int, fn distance.Func) [][]neighbor {
	n := len(rows)
	out := make([][]neighbor, n)
	cand := make([]neighbor, 0, n-1)

	var i, j int
	for i = 0; i < n; i++ {
		cand = cand[:0]
		for j = 0; j < n; j++ {
			if j == i {
				continue
			}
			cand = append(cand, neighbor{index: j, dist: fn(rows[i], rows[j])})
		}
		sort.Slice(cand, func(a, b int) bool {
			if cand[a].dist != cand[b].dist {
				return cand[a].dist < cand[b].dist
			}
			return cand[a].index < cand[b].index
		})
		out[i] = append([]neighbor(nil), cand[:k]...)
	}

	return out
}

// smoothKNN computes per-point ρ (distance to the nearest non-identical
// neighbour) and σ such that Σ_j exp(−max(0, d_j−ρ)/σ) ≈ log2(k).
func smoothKNN(knn [][]neighbor, k int) (sigmas, rhos []float64) {
	n := len(knn)
	sigmas = make([]float64, n)
	rhos = make([]float64, n)
	target := math.Log2(float64(k))

	var meanAll float64
	for i := range knn {
		for _, nb := range knn[i] {
			meanAll += nb.dist
		}
	}
	if n > 0 {
		meanAll /= float64(n * k)
	}

	var (
		i, it       int
		lo, hi, mid float64
		psum, d     float64
		meanI       float64
	)
	for i = 0; i < n; i++ {
		for _, nb := range knn[i] {
			if nb.dist > 0 {
				rhos[i] = nb.dist
				break
			}
		}

		lo, hi, mid = 0, math.Inf(1), 1
		for it = 0; it < smoothKIters; it++ {
			psum = 0
			for _, nb := range knn[i] {
				if d = nb.dist - rhos[i]; d > 0 {
					psum += math.Exp(-d / mid)
				} else {
					psum++
				}
			}
			if math.Abs(psum-target) < smoothKTolerance {
				break
			}
			if psum > target {
				hi = mid
				mid = (lo + hi) / 2
			} else {
				lo = mid
				if math.IsInf(hi, 1) {
					mid *= 2
				} else {
					mid = (lo + hi) / 2
				}
			}
		}

		meanI = 0
		for _, nb := range knn[i] {
			meanI += nb.dist
		}
		meanI /= float64(k)
		if rhos[i] > 0 {
			mid = math.Max(mid, minKDistScale*meanI)
		} else {
			mid = math.Max(mid, minKDistScale*meanAll)
		}
		sigmas[i] = mid
	}

	return sigmas, rhos
}

// membership is the directed fuzzy membership of a kNN entry.
func membership(d, rho, sigma float64) float64 {
	x := d - rho
	if x <= 0 || sigma <= 0 {
		return 1
	}

	return math.Exp(-x / sigma)
}

// fuzzyGraph symmetrizes the directed memberships with the fuzzy union
// w = a + b − a·b and returns both directions of every undirected edge,
// sorted by (head, tail).
func fuzzyGraph(knn [][]neighbor, sigmas, rhos []float64) []edge {
	n := len(knn)
	directed := make(map[[2]int]float64, n*len(knn[0]))
	var i int
	for i = 0; i < n; i++ {
		for _, nb := range knn[i] {
			directed[[2]int{i, nb.index}] = membership(nb.dist, rhos[i], sigmas[i])
		}
	}

	edges := make([]edge, 0, 2*len(directed))
	var a, b, w float64
	for key, v := range directed {
		i, j := key[0], key[1]
		if rev, ok := directed[[2]int{j, i}]; ok && j < i {
			continue // pair emitted from the (j,i) side
		} else if ok {
			a, b = v, rev
		} else {
			a, b = v, 0
		}
		if w = a + b - a*b; w <= 0 {
			continue
		}
		edges = append(edges, edge{head: i, tail: j, weight: w}, edge{head: j, tail: i, weight: w})
	}
	sort.Slice(edges, func(x, y int) bool {
		if edges[x].head != edges[y].head {
			return edges[x].head < edges[y].head
		}
		return edges[x].tail < edges[y].tail
	})

	return edges
}
