// Package similarity computes cosine similarity between embedding vectors.
package similarity

import (
	"fmt"
	"math"
)

// Matrix computes the pairwise cosine similarity between two sets of embedding
// vectors. The result has one row per entry in rows and one column per entry
// in cols, with every score clipped to [0, 1]. Zero-norm vectors produce zero
// scores rather than NaN.
func Matrix(rows, cols [][]float64) ([][]float64, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, ErrEmptyInput
	}

	dim := len(rows[0])
	for i, v := range rows {
		if len(v) != dim {
			return nil, fmt.Errorf("row %d: %w: got %d, want %d", i, ErrDimensionMismatch, len(v), dim)
		}
	}
	for i, v := range cols {
		if len(v) != dim {
			return nil, fmt.Errorf("col %d: %w: got %d, want %d", i, ErrDimensionMismatch, len(v), dim)
		}
	}

	normRows := normalize(rows)
	normCols := normalize(cols)

	out := make([][]float64, len(rows))
	for i := range normRows {
		out[i] = make([]float64, len(cols))
		for j := range normCols {
			s := dot(normRows[i], normCols[j])
			if s < 0 {
				s = 0
			} else if s > 1 {
				s = 1
			}
			out[i][j] = s
		}
	}
	return out, nil
}

// Cosine computes the cosine similarity between two vectors, clipped to [0, 1].
func Cosine(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyInput
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: got %d and %d", ErrDimensionMismatch, len(a), len(b))
	}
	na := math.Sqrt(dot(a, a))
	nb := math.Sqrt(dot(b, b))
	if na == 0 || nb == 0 {
		return 0, nil
	}
	s := dot(a, b) / (na * nb)
	if s < 0 {
		return 0, nil
	}
	if s > 1 {
		return 1, nil
	}
	return s, nil
}

// normalize L2-normalizes each vector. Zero-norm vectors stay zero so their
// similarity to everything is 0.
func normalize(vecs [][]float64) [][]float64 {
	out := make([][]float64, len(vecs))
	for i, v := range vecs {
		n := math.Sqrt(dot(v, v))
		nv := make([]float64, len(v))
		if n > 0 {
			for j, x := range v {
				nv[j] = x / n
			}
		}
		out[i] = nv
	}
	return out
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
