package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for HTTP 401. The session has already been
	// cleared by the time the caller sees it.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConnection is wrapped around transport failures where no response arrived.
	ErrConnection = errors.New("unable to reach the server")
)

// fallbackMessage is used when an error response carries no readable message.
const fallbackMessage = "failed to process request"

// APIError is an application error returned by the backend (any non-2xx
// status other than 401).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

func connectionError(err error) error {
	return fmt.Errorf("%w: %v", ErrConnection, err)
}
