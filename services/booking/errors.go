package booking

import "errors"

var (
	ErrInvalidProfile     = errors.New("no profile selected")
	ErrNoServicesSelected = errors.New("no services selected")
	ErrInvalidStartTime   = errors.New("invalid start time")
	ErrNoSession          = errors.New("booking session not found")
)
