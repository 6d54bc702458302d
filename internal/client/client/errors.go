package client

import (
	"errors"

	"github.com/dmitrijs2005/vidgen/internal/client/rest"
)

var (
	ErrUnavailable     = rest.ErrUnavailable
	ErrUnauthorized    = rest.ErrUnauthorized
	ErrNotFound        = rest.ErrNotFound
	ErrInvalidResponse = errors.New("invalid server response")
	ErrValidation      = errors.New("validation failed")
)

// APIError is a server-reported failure.
type APIError = rest.APIError

// Message returns the user-displayable text of err, or fallback.
func Message(err error, fallback string) string {
	return rest.Message(err, fallback)
}
