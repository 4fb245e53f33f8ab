package tsp_test

import (
	"testing"

	"github.com/katalvlaran/sonicpath/tsp"
)

func TestValidatePermutation(t *testing.T) {
	cases := []struct {
		name  string
		perm  []int
		n     int
		valid bool
	}{
		{"empty", []int{}, 0, true},
		{"nilEmpty", nil, 0, true},
		{"identity", []int{0, 1, 2}, 3, true},
		{"shuffled", []int{2, 0, 1}, 3, true},
		{"short", []int{0, 1}, 3, false},
		{"duplicate", []int{0, 0, 2}, 3, false},
		{"outOfRange", []int{0, 1, 3}, 3, false},
		{"negative", []int{-1, 0, 1}, 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tsp.ValidatePermutation(tc.perm, tc.n)
			if tc.valid {
				mustNoErr(t, err)
				return
			}
			mustErrIs(t, err, tsp.ErrDimensionMismatch)
		})
	}
}

func TestIdentity(t *testing.T) {
	mustEqualInts(t, tsp.Identity(0), []int{})
	mustEqualInts(t, tsp.Identity(4), []int{0, 1, 2, 3})
}

func TestApply(t *testing.T) {
	got, err := tsp.Apply([]string{"a", "b", "c"}, []int{2, 0, 1})
	mustNoErr(t, err)
	if got[0] != "c" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("Apply = %v", got)
	}

	_, err = tsp.Apply([]string{"a", "b"}, []int{0, 0})
	mustErrIs(t, err, tsp.ErrDimensionMismatch)
}

func TestPathLength(t *testing.T) {
	m := euclid([][2]float64{{0, 0}, {3, 4}, {3, 0}})

	d, err := tsp.PathLength(m, []int{0, 1, 2})
	mustNoErr(t, err)
	mustFloatClose(t, d, 9, epsTiny)

	d, err = tsp.PathLength(m, []int{0, 2, 1})
	mustNoErr(t, err)
	mustFloatClose(t, d, 7, epsTiny)

	_, err = tsp.PathLength(m, []int{0, 1})
	mustErrIs(t, err, tsp.ErrDimensionMismatch)

	d, err = tsp.PathLength(euclid(nil), nil)
	mustNoErr(t, err)
	mustFloatClose(t, d, 0, 0)
}

func TestResult_Improvement(t *testing.T) {
	mustFloatClose(t, tsp.Result{InitialDistance: 4, Distance: 3}.Improvement(), 0.25, epsTiny)
	mustFloatClose(t, tsp.Result{}.Improvement(), 0, 0)
}

func TestState_Offer(t *testing.T) {
	st := tsp.NewState([]int{0, 1, 2}, 10)

	acc, imp := st.Offer([]int{1, 0, 2}, 10)
	if acc || imp {
		t.Fatal("equal distance must not be accepted")
	}
	acc, imp = st.Offer([]int{2, 1, 0}, 8)
	if !acc || !imp {
		t.Fatal("shorter candidate must be accepted")
	}
	mustEqualInts(t, st.Best, []int{2, 1, 0})
	mustEqualInts(t, st.Current, []int{2, 1, 0})
	if st.BestDistance > st.CurrentDistance {
		t.Fatalf("best %.3f above current %.3f", st.BestDistance, st.CurrentDistance)
	}
}
