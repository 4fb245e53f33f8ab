// Package tsp_test exercises the open-path 2-opt polish via the public API.
package tsp_test

import (
	"testing"

	"github.com/katalvlaran/sonicpath/tsp"
)

// TestTwoOptOpen_UncrossesZigzag: points on a line visited out of order are
// sorted back into a monotone walk.
func TestTwoOptOpen_UncrossesZigzag(t *testing.T) {
	m := euclid([][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}})

	got, d, err := tsp.TwoOptOpen(m, []int{0, 3, 2, 1, 4})
	mustNoErr(t, err)
	mustEqualInts(t, got, []int{0, 1, 2, 3, 4})
	mustFloatClose(t, d, 4, epsTiny)
}

// TestTwoOptOpen_FlipsEndSegment: the tail can be flipped by changing a
// single edge, which closed-tour 2-opt cannot express.
func TestTwoOptOpen_FlipsEndSegment(t *testing.T) {
	m := euclid([][2]float64{{0, 0}, {1, 0}, {3, 0}, {2, 0}})

	got, d, err := tsp.TwoOptOpen(m, []int{0, 1, 2, 3})
	mustNoErr(t, err)
	mustEqualInts(t, got, []int{0, 1, 3, 2})
	mustFloatClose(t, d, 3, epsTiny)
}

// TestTwoOptOpen_InputUntouched checks that the input order is copied.
func TestTwoOptOpen_InputUntouched(t *testing.T) {
	m := euclid(rippledCircle(9, 4))
	in := tsp.Identity(9)

	out, _, err := tsp.TwoOptOpen(m, in)
	mustNoErr(t, err)
	mustPermutation(t, out, 9)
	mustEqualInts(t, in, tsp.Identity(9))
}

func TestTwoOptOpen_RejectsBadOrder(t *testing.T) {
	m := euclid([][2]float64{{0, 0}, {1, 0}, {2, 0}})

	_, _, err := tsp.TwoOptOpen(m, []int{0, 1})
	mustErrIs(t, err, tsp.ErrDimensionMismatch)
}
