package similarity

import "errors"

var (
	// ErrEmptyInput indicates one of the vector sets was empty.
	ErrEmptyInput = errors.New("similarity: empty input")

	// ErrDimensionMismatch indicates vectors of differing dimension.
	ErrDimensionMismatch = errors.New("similarity: dimension mismatch")
)
