package secure

import "errors"

var (
	// ErrMissingDependency indicates the orchestrator was constructed
	// without a detector, monitor, or model caller.
	ErrMissingDependency = errors.New("secure: detector, monitor, and caller are required")

	// ErrModelCallFailed is returned when the underlying model call fails.
	// It deliberately carries no provider detail; the raw cause is logged.
	ErrModelCallFailed = errors.New("secure: model call failed")
)
