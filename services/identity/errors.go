package identity

import "errors"

var (
	ErrNoSession         = errors.New("booking session not found")
	ErrMismatch          = errors.New("authenticated user does not match the session user")
	ErrNotAttachable     = errors.New("identity is not ready to be attached")
	ErrNotAuthenticated  = errors.New("request is not authenticated")
	ErrUnknownNextStep   = errors.New("unrecognized next step")
	ErrMissingUserRecord = errors.New("authentication response has no user")
)
