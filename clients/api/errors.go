package api

import (
	"errors"
	"fmt"
)

// TransportError means the call could not complete: the service was
// unreachable, the connection broke, or the response could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError means the service answered with a non-2xx status.
type ServiceError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("Backend error: %d", e.StatusCode)
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status carried by a ServiceError in err's chain, or 0.
func StatusCode(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
