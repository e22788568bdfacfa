package usecase

import "errors"

// Error kinds surfaced to callers. Wrap with fmt.Errorf("...: %w", Err*)
// so the transport layer can map them to status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUpstream           = errors.New("upstream failure")
	ErrInvalidCredentials = errors.New("email or password is invalid")
)
