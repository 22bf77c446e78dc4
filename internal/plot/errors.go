package plot

import "errors"

var (
	// ErrInvalidBox indicates an axis box with no width or no height.
	ErrInvalidBox = errors.New("plot: axis box must have positive width and height")

	// ErrLengthMismatch indicates x and y series of different lengths.
	ErrLengthMismatch = errors.New("plot: x and y lengths differ")

	// ErrShape indicates grid and data matrices of different shapes.
	ErrShape = errors.New("plot: grid and data shapes differ")

	// ErrNoFiniteData indicates a data matrix without a single finite value.
	ErrNoFiniteData = errors.New("plot: no finite values to plot")

	// ErrGridNotIncreasing indicates a streamline grid whose coordinates do
	// not increase strictly along rows and columns.
	ErrGridNotIncreasing = errors.New("plot: grid coordinates must increase strictly")
)
