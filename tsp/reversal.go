// Package tsp - randomized segment-reversal local search on an open path.
//
// SegmentReversal starts from the identity order and performs a fixed number of
// random segment reversals, accepting a candidate only when its full path
// length is strictly shorter than the current one.
//
//   - Candidate:  prefix [0,i) + reversed [i,j) + suffix [j,n), with i ≤ j drawn
//     uniformly from [0,n). Since j < n the final element never moves, and
//     i == j yields an unchanged candidate that is simply rejected.
//   - Acceptance: strict greedy descent (cand < cur). Best is tracked apart
//     from Current and returned.
//   - Cost:       the full O(n) path length is recomputed for every candidate.
//
// Contracts:
//   - dist is n×n, finite, non-negative, symmetric and zero on the diagonal.
//   - n ≤ 2 returns the identity order immediately (no reversal can change it).
//
// Complexity:
//   - O(n²) validation plus O(K·n) search for K iterations; O(n²) memory for
//     the prefetched distances and O(n) per order.
package tsp

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/sonicpath/matrix"
)

// checkEvery is the iteration stride for context and deadline checks.
// It must be a power of two.
const checkEvery = 64

// SegmentReversal runs the randomized segment-reversal search described in
// the file comment and returns the best order found.
//
// On context cancellation or an elapsed TimeLimit it returns the best order
// reached so far with Result.Partial set, together with an error wrapping
// ErrCanceled (and ctx.Err()) or ErrTimeLimit. Every other error comes with
// a zero Result.
func SegmentReversal(ctx context.Context, dist matrix.Matrix, opts Options) (Result, error) {
	// Stage 1: Validate options and prefetch the matrix.
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	n, w, err := prefetch(dist)
	if err != nil {
		return Result{}, err
	}

	iterations := opts.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	src := opts.Source
	if src == nil {
		src = NewSource(opts.Seed)
	}

	// Stage 2: Identity start.
	start := Identity(n)
	initial := pathLength(w, n, start)
	res := Result{InitialDistance: initial}
	if n <= 2 {
		res.Order = start
		res.Distance = initial

		return res, nil
	}
	st := NewState(start, initial)

	var (
		useDeadline bool
		deadline    time.Time
	)
	if opts.TimeLimit > 0 {
		useDeadline = true
		deadline = time.Now().Add(opts.TimeLimit)
	}

	// Stage 3: Randomized descent.
	var (
		it, i, j int
		stall    int
		d        float64
		acc, imp bool
		cand     = make([]int, n)
		stopErr  error
	)
	for it = 0; it < iterations; it++ {
		if it&(checkEvery-1) == 0 {
			if cerr := ctx.Err(); cerr != nil {
				stopErr = fmt.Errorf("%w: %w", ErrCanceled, cerr)
				break
			}
			if useDeadline && time.Now().After(deadline) {
				stopErr = ErrTimeLimit
				break
			}
		}

		i, j = src.Intn(n), src.Intn(n)
		if i > j {
			i, j = j, i
		}
		copy(cand, st.Current)
		reverseSegment(cand, i, j)
		d = pathLength(w, n, cand)

		acc, imp = st.Offer(cand, d)
		if acc {
			res.Accepted++
		}
		if imp {
			stall = 0
			if opts.OnImprove != nil {
				opts.OnImprove(it, st.BestDistance)
			}
			continue
		}
		stall++
		if opts.Patience > 0 && stall >= opts.Patience {
			it++
			break
		}
	}
	res.Iterations = it

	if stopErr != nil {
		res.Order = st.Best
		res.Distance = st.BestDistance
		res.Partial = true

		return res, stopErr
	}

	// Stage 4: Optional deterministic polish.
	if opts.Polish {
		if d = st.BestDistance + twoOptOpen(w, n, st.Best); d < st.BestDistance {
			st.BestDistance = pathLength(w, n, st.Best)
			if opts.OnImprove != nil {
				opts.OnImprove(it, st.BestDistance)
			}
		}
	}

	res.Order = st.Best
	res.Distance = st.BestDistance

	return res, nil
}
