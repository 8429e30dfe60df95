package cluster

import "errors"

var (
	// ErrInvalidThreshold indicates a similarity threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("cluster: threshold must be in [0, 1]")

	// ErrInvalidMinSize indicates a minimum cluster size below 1.
	ErrInvalidMinSize = errors.New("cluster: minimum size must be at least 1")
)
