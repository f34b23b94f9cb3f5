package authn

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("handle and secret are required")

	// ErrInvalidCredentials is returned for every login failure, whether the
	// handle is unknown or the secret is wrong. Callers must not be able to
	// tell the two apart, otherwise login becomes a handle enumeration
	// oracle.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
