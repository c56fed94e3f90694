package sampler

import "errors"

var (
	// ErrInvalidConfiguration is returned when the interval duration is not positive
	ErrInvalidConfiguration = errors.New("interval duration must be positive")
	// ErrUnorderableInput is returned for measurements without a usable timestamp
	ErrUnorderableInput = errors.New("measurement has no timestamp")
	// ErrUnknownChannel is returned for channels outside the known set
	ErrUnknownChannel = errors.New("unknown channel")
)
