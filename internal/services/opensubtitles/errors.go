package opensubtitles

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies provider failures
type ErrorKind string

const (
	KindAuthentication     ErrorKind = "authentication"
	KindDownloadLimit      ErrorKind = "download_limit"
	KindTooManyRequests    ErrorKind = "too_many_requests"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindConfiguration      ErrorKind = "configuration"
	KindProvider           ErrorKind = "provider"
)

// Error is returned by every Client operation that fails
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

// Sentinels for errors.Is checks; they match any *Error of the same kind.
var (
	ErrAuthentication     = &Error{Kind: KindAuthentication}
	ErrDownloadLimit      = &Error{Kind: KindDownloadLimit}
	ErrTooManyRequests    = &Error{Kind: KindTooManyRequests}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
	ErrConfiguration      = &Error{Kind: KindConfiguration}
	ErrProvider           = &Error{Kind: KindProvider}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("opensubtitles %s (status %d): %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("opensubtitles %s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind only
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of a provider error, or "" for other errors
func KindOf(err error) ErrorKind {
	var providerErr *Error
	if errors.As(err, &providerErr) {
		return providerErr.Kind
	}
	return ""
}

// IsRetriable reports whether waiting and trying again could help
func IsRetriable(err error) bool {
	switch KindOf(err) {
	case KindTooManyRequests, KindServiceUnavailable:
		return true
	}
	return false
}

// errorForStatus maps an HTTP status to a provider error
func errorForStatus(status int, body string) *Error {
	kind := KindProvider
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuthentication
	case status == http.StatusNotAcceptable:
		kind = KindDownloadLimit
	case status == http.StatusTooManyRequests:
		kind = KindTooManyRequests
	case status >= 500:
		kind = KindServiceUnavailable
	}
	return &Error{Kind: kind, StatusCode: status, Message: body}
}
