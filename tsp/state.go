package tsp

// State is the working state of SegmentReversal. It is owned by a single
// search and never shared.
//
// Invariants:
//   - BestDistance ≤ CurrentDistance.
//   - Best is always a valid permutation of [0, n).
type State struct {
	Current         []int
	CurrentDistance float64
	Best            []int
	BestDistance    float64
}

// NewState starts both the current and the best order at start.
// The slice is copied.
func NewState(start []int, distance float64) *State {
	cur := make([]int, len(start))
	copy(cur, start)
	best := make([]int, len(start))
	copy(best, start)

	return &State{
		Current:         cur,
		CurrentDistance: distance,
		Best:            best,
		BestDistance:    distance,
	}
}

// Offer applies the greedy acceptance rule to a candidate order:
// it replaces Current when distance < CurrentDistance and, independently,
// Best when distance < BestDistance. The candidate slice is copied on
// adoption. It reports whether Current and Best changed.
func (s *State) Offer(candidate []int, distance float64) (accepted, improved bool) {
	if distance < s.CurrentDistance {
		copy(s.Current, candidate)
		s.CurrentDistance = distance
		accepted = true
	}
	if distance < s.BestDistance {
		copy(s.Best, candidate)
		s.BestDistance = distance
		improved = true
	}

	return accepted, improved
}
