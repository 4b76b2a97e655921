// Package resilience classifies external-dependency failures and provides a
// bounded retry helper for the API boundaries of the pipeline.
package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// Kind labels an external-dependency failure so callers can phrase the
// fallback message shown alongside sample data.
type Kind string

const (
	KindAuth      Kind = "auth"      // invalid or expired API credentials
	KindQuota     Kind = "quota"     // rate limit or plan quota exhausted
	KindTransient Kind = "transient" // timeout, 5xx, connection failure
)

// BoundaryError wraps a failure from an external provider with its kind and
// the HTTP status that produced it, when known.
type BoundaryError struct {
	Err        error
	Kind       Kind
	StatusCode int
}

func (e *BoundaryError) Error() string {
	return e.Err.Error()
}

func (e *BoundaryError) Unwrap() error {
	return e.Err
}

// NewBoundaryError classifies an HTTP failure by status code.
func NewBoundaryError(err error, statusCode int) *BoundaryError {
	kind := KindTransient
	switch statusCode {
	case 401, 403:
		kind = KindAuth
	case 402, 429:
		kind = KindQuota
	}
	return &BoundaryError{Err: err, Kind: kind, StatusCode: statusCode}
}

// KindOf returns the failure kind for an error chain, defaulting to
// transient for anything unclassified.
func KindOf(err error) Kind {
	var be *BoundaryError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindTransient
}

// IsTransient reports whether the error is safe to retry: an explicitly
// transient BoundaryError, a network timeout, a connection-level failure, or
// a known transient pattern from a wrapped HTTP client error.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var be *BoundaryError
	if errors.As(err, &be) {
		return be.Kind == KindTransient || be.Kind == KindQuota
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
