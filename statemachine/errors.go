package statemachine

import "errors"

var (
	ErrConfig         = errors.New("statemachine: invalid configuration")
	ErrLayout         = errors.New("statemachine: component layout mismatch")
	ErrBehavior       = errors.New("statemachine: conflicting component behavior")
	ErrRange          = errors.New("statemachine: index out of range")
	ErrNotInitialised = errors.New("statemachine: not initialised")
)
