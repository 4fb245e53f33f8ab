package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrDimensionMismatch is returned when two vectors (or points of one set)
// do not share the same dimensionality.
var ErrDimensionMismatch = errors.New("distance: dimension mismatch")

// ErrUnknownMetric is returned by ParseMetric for unsupported names.
var ErrUnknownMetric = errors.New("distance: unknown metric")

// SquaredL2 calculates the squared Euclidean distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var s, d float64
	for k := range a {
		d = a[k] - b[k]
		s += d * d
	}
	return s
}

// Euclidean calculates the L2 distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Euclidean(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Cosine returns 1 − a·b/(‖a‖‖b‖). Two zero vectors are at distance 0;
// one zero vector against a non-zero one is at distance 1.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for k := range a {
		dot += a[k] * b[k]
		na += a[k] * a[k]
		nb += b[k] * b[k]
	}
	switch {
	case na == 0 && nb == 0:
		return 0
	case na == 0 || nb == 0:
		return 1
	}
	return clampUnit(1 - dot/math.Sqrt(na*nb))
}

// Correlation returns 1 − r, where r is the Pearson correlation of a and b.
// Constant vectors follow the Cosine zero-vector convention after centering.
func Correlation(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return 0
	}
	var ma, mb float64
	for k := range a {
		ma += a[k]
		mb += b[k]
	}
	ma /= n
	mb /= n

	var dot, va, vb, da, db float64
	for k := range a {
		da = a[k] - ma
		db = b[k] - mb
		dot += da * db
		va += da * da
		vb += db * db
	}
	switch {
	case va == 0 && vb == 0:
		return 0
	case va == 0 || vb == 0:
		return 1
	}
	return clampUnit(1 - dot/math.Sqrt(va*vb))
}

// clampUnit keeps 1−cos style distances inside [0,2] against FP drift.
func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 2 {
		return 2
	}
	return x
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricCosine
	MetricCorrelation
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "euclidean"
	case MetricCosine:
		return "cosine"
	case MetricCorrelation:
		return "correlation"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseMetric maps a case-insensitive name onto a Metric. The empty string
// selects MetricEuclidean.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "euclidean", "l2":
		return MetricEuclidean, nil
	case "cosine":
		return MetricCosine, nil
	case "correlation":
		return MetricCorrelation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricCosine:
		return Cosine, nil
	case MetricCorrelation:
		return Correlation, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
}
