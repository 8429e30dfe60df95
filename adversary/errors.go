package adversary

import "errors"

var (
	// ErrNoAttackRules indicates an attempt to configure a monitor with an
	// empty rule set.
	ErrNoAttackRules = errors.New("adversary: attack rule set must not be empty")
)
