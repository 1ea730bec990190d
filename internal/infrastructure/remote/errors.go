package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call
type Kind string

const (
	KindTransport Kind = "transport"
	KindTimeout   Kind = "timeout"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
	KindAuth      Kind = "auth"
)

// ErrNoSession is returned when a call needs a bearer token and the context carries none
var ErrNoSession = errors.New("no admin session in context")

// Error is returned by every Client call that fails
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports a rejected or missing bearer token
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrNoSession) {
		return true
	}
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

func IsTimeout(err error) bool {
	remoteErr, ok := AsError(err)
	return ok && remoteErr.Kind == KindTimeout
}

func hasStatus(err error, status int) bool {
	remoteErr, ok := AsError(err)
	return ok && remoteErr.Kind == KindStatus && remoteErr.StatusCode == status
}
