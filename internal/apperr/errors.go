package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
)

// Assistant workflow failures. Matched with errors.Is at the HTTP and MCP
// boundaries; the wrapped message is what the user sees.
var (
	ErrMissingAPIKey     = errors.New("api key is not configured")
	ErrTransport         = errors.New("generation request failed")
	ErrMalformedResponse = errors.New("generation result is not in the expected format")
	ErrPrecondition      = errors.New("precondition failed")
)
