package engine

import "errors"

var (
	// ErrNoResponse is returned when neither rules, memory nor the NONE
	// keyword produce a response.
	ErrNoResponse = errors.New("no response")
	// ErrRedirectLimit is reported when a redirect chain exceeds the
	// configured maximum.
	ErrRedirectLimit = errors.New("redirect limit exceeded")
	// ErrInvalidPattern is returned when a decomposition or pre pattern
	// fails to compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
