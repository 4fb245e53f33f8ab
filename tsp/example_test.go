// Package tsp_test provides runnable, deterministic examples for the route
// optimizer. Each example prints an order and a length with a stable
// // Output: block.
package tsp_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/sonicpath/matrix"
	"github.com/katalvlaran/sonicpath/tsp"
)

// ExampleSegmentReversal orders the corners of a unit square given in a
// scrambled sequence.
func ExampleSegmentReversal() {
	// Corners (0,0), (1,1), (0,1), (1,0): identity walk crosses twice.
	r2 := 1.4142135623730951
	dist, _ := matrix.FromRows([][]float64{
		{0, r2, 1, 1},
		{r2, 0, 1, 1},
		{1, 1, 0, r2},
		{1, 1, r2, 0},
	})

	res, err := tsp.SegmentReversal(context.Background(), dist, tsp.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("initial=%.3f best=%.3f\n", res.InitialDistance, res.Distance)
	// Output:
	// initial=3.828 best=3.000
}

// ExamplePathLength sums consecutive distances of an open path.
func ExamplePathLength() {
	dist, _ := matrix.FromRows([][]float64{
		{0, 1, 5},
		{1, 0, 4},
		{5, 4, 0},
	})
	d, _ := tsp.PathLength(dist, []int{0, 1, 2})
	fmt.Println(d)
	// Output:
	// 5
}
