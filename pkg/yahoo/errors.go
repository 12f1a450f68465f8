package yahoo

import "errors"

var (
	ErrEmptyBody        = errors.New("empty response body")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrInvalidJSON      = errors.New("invalid json")

	// structural validation
	ErrNoResult     = errors.New("no result entry")
	ErrMissingField = errors.New("missing field")
)
