package distance

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Negative", []float64{-1, -1}, []float64{1, 1}, math.Sqrt(8)},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.expected*tt.expected, SquaredL2(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Parallel", []float64{1, 2}, []float64{2, 4}, 0},
		{"Orthogonal", []float64{1, 0}, []float64{0, 1}, 1},
		{"Opposite", []float64{1, 1}, []float64{-1, -1}, 2},
		{"BothZero", []float64{0, 0}, []float64{0, 0}, 0},
		{"OneZero", []float64{0, 0}, []float64{1, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Cosine(tt.a, tt.b), 1e-12)
		})
	}
}

func TestCorrelation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"PerfectPositive", []float64{1, 2, 3}, []float64{10, 20, 30}, 0},
		{"PerfectNegative", []float64{1, 2, 3}, []float64{3, 2, 1}, 2},
		{"ShiftInvariant", []float64{1, 2, 3}, []float64{101, 102, 103}, 0},
		{"Constant", []float64{5, 5, 5}, []float64{5, 5, 5}, 0},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Correlation(tt.a, tt.b), 1e-12)
		})
	}
}

func TestParseMetricAndProvider(t *testing.T) {
	for _, name := range []string{"", "euclidean", "L2", "cosine", "Correlation"} {
		m, err := ParseMetric(name)
		require.NoError(t, err, name)
		fn, err := Provider(m)
		require.NoError(t, err)
		require.NotNil(t, fn)
	}

	_, err := ParseMetric("manhattan")
	require.True(t, errors.Is(err, ErrUnknownMetric))

	_, err = Provider(Metric(42))
	require.ErrorIs(t, err, ErrUnknownMetric)
	assert.Equal(t, "unknown(42)", Metric(42).String())
	assert.Equal(t, "correlation", MetricCorrelation.String())
}
