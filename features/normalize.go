package features

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/sonicpath/matrix"
)

// Normalization selects how a feature table is rescaled before embedding.
type Normalization int

const (
	// NormalizeNone passes raw catalog values through unchanged.
	NormalizeNone Normalization = iota
	// NormalizeZScore standardizes every dimension to mean 0, deviation 1.
	NormalizeZScore
	// NormalizeMinMax maps every dimension onto [0,1].
	NormalizeMinMax
)

func (n Normalization) String() string {
	switch n {
	case NormalizeNone:
		return "none"
	case NormalizeZScore:
		return "zscore"
	case NormalizeMinMax:
		return "minmax"
	default:
		return fmt.Sprintf("normalization(%d)", int(n))
	}
}

// ParseNormalization maps a config string onto a Normalization.
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "raw":
		return NormalizeNone, nil
	case "zscore", "standardize":
		return NormalizeZScore, nil
	case "minmax":
		return NormalizeMinMax, nil
	default:
		return 0, fmt.Errorf("%w: unknown normalization %q", ErrInvalidInput, s)
	}
}

// Normalize returns a rescaled copy of rows. Constant dimensions map to 0.
// Tables with fewer than two rows are returned as copies untouched, since
// their statistics are degenerate.
func Normalize(rows [][]float64, mode Normalization) ([][]float64, error) {
	if mode == NormalizeNone || len(rows) < 2 {
		return copyRows(rows), nil
	}
	m, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var scaled matrix.Matrix
	switch mode {
	case NormalizeZScore:
		scaled, err = matrix.StandardizeColumns(m)
	case NormalizeMinMax:
		scaled, err = matrix.MinMaxColumns(m)
	default:
		return nil, fmt.Errorf("%w: unknown normalization %v", ErrInvalidInput, mode)
	}
	if err != nil {
		return nil, err
	}

	out := make([][]float64, scaled.Rows())
	for i := range out {
		out[i] = make([]float64, scaled.Cols())
		for j := range out[i] {
			out[i][j], _ = scaled.At(i, j)
		}
	}
	return out, nil
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i := range rows {
		out[i] = append([]float64(nil), rows[i]...)
	}
	return out
}
