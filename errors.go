package kdknn

import "errors"

var (
	// ErrEmptyInput is returned when a tree is built from no data.
	ErrEmptyInput = errors.New("kdknn: empty input")

	// ErrTooManyPoints is returned when the data would produce a tree deeper
	// than the traversal stack can hold.
	ErrTooManyPoints = errors.New("kdknn: too many points")

	// ErrNonFinite is returned when a point has a NaN or infinite coordinate.
	ErrNonFinite = errors.New("kdknn: non-finite coordinate")

	// ErrInvalidK is returned when a candidate list capacity is not positive.
	ErrInvalidK = errors.New("kdknn: k must be positive")

	// ErrStrategyUnavailable is returned when the configuration selects a
	// traversal that was not supplied.
	ErrStrategyUnavailable = errors.New("kdknn: traversal strategy unavailable")
)
