package simulation

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid simulation configuration")
	ErrLimitExceeded        = errors.New("simulation size exceeds configured limits")
)
