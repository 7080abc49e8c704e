package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrTimeout reports that the underlying transport gave up on a request
// before the server answered. A blocking query whose wait window expires
// normally is not a timeout; the server answers those with an unchanged
// index instead.
var ErrTimeout = errors.New("consulq: request timed out")

// ErrorKind classifies a StatusError into the error taxonomy.
type ErrorKind int

const (
	// KindBadRequest is a malformed request, status 400.
	KindBadRequest ErrorKind = iota
	// KindAuthDisabled means the ACL subsystem is not enabled, status 401.
	KindAuthDisabled
	// KindPermissionDenied means the token lacks permission, status 403.
	KindPermissionDenied
	// KindNotFound is a missing resource the caller refused to treat as
	// empty, status 404.
	KindNotFound
	// KindClientError is any other 4xx.
	KindClientError
	// KindServiceError is any 5xx.
	KindServiceError
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindAuthDisabled:
		return "acl support disabled"
	case KindPermissionDenied:
		return "permission denied"
	case KindNotFound:
		return "not found"
	case KindClientError:
		return "client error"
	default:
		return "server error"
	}
}

// StatusError describes a non-success response from the server. Match it
// with errors.As, or use the Is* helpers when only the kind matters.
type StatusError struct {
	// Status is the HTTP status code returned by the server.
	Status int
	// Body is the raw response body; the server sends plain text on
	// errors, not JSON.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("consulq: %s: %d %s", e.Kind(), e.Status, e.Body)
	}
	return fmt.Sprintf("consulq: %s: status %d", e.Kind(), e.Status)
}

// Kind derives the taxonomy bucket from the status code.
func (e *StatusError) Kind() ErrorKind {
	switch {
	case e.Status >= 500:
		return KindServiceError
	case e.Status == 400:
		return KindBadRequest
	case e.Status == 401:
		return KindAuthDisabled
	case e.Status == 403:
		return KindPermissionDenied
	case e.Status == 404:
		return KindNotFound
	default:
		return KindClientError
	}
}

func errorOfKind(err error, kind ErrorKind) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Kind() == kind
}

// IsBadRequest reports whether err is a 400 response.
func IsBadRequest(err error) bool { return errorOfKind(err, KindBadRequest) }

// IsAuthDisabled reports whether err is a 401 response.
func IsAuthDisabled(err error) bool { return errorOfKind(err, KindAuthDisabled) }

// IsPermissionDenied reports whether err is a 403 response.
func IsPermissionDenied(err error) bool { return errorOfKind(err, KindPermissionDenied) }

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool { return errorOfKind(err, KindNotFound) }

// IsServiceError reports whether err is a 5xx response.
func IsServiceError(err error) bool { return errorOfKind(err, KindServiceError) }

// IsTimeout reports whether err is a transport-level timeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// isTimeoutError unwraps transport failures down to the timeout signal.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		err = urlErr.Err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
