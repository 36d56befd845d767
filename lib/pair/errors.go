package pair

import (
	"errors"
)

var (
	// ErrConfig classifies errors caused by invalid settings or coefficients.
	// No part of a rejected setting is applied.
	ErrConfig = errors.New("invalid pair configuration")
	// ErrPrecondition classifies errors caused by a particle model or table
	// state that the pair style cannot be run against.
	ErrPrecondition = errors.New("pair style precondition failed")
)
