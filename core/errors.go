package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is wrapped by fetches rejected before any request is sent.
	ErrInvalidURL = errors.New("the url is invalid")
	// ErrEmptyContent is wrapped when a 200 response has an empty body.
	ErrEmptyContent = errors.New("content length is 0")
	// ErrWrongStatus is wrapped when the response status is not 200.
	ErrWrongStatus = errors.New("wrong status code")
)

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	KindInvalidURL ErrorKind = iota + 1
	KindTransport
	KindEmptyContent
	KindBadStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindTransport:
		return "transport"
	case KindEmptyContent:
		return "empty_content"
	case KindBadStatus:
		return "bad_status"
	default:
		return "unknown"
	}
}

// FetchError describes a failed fetch. StatusCode is zero when no
// response was received. For KindTransport, Err is the raw client error.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Err        error
}

// Error describes the failure with its URL and, when known, status code.
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	case KindEmptyContent, KindBadStatus:
		return fmt.Sprintf("fetching %s: %v (status %d)", e.URL, e.Err, e.StatusCode)
	default:
		if e.Err == nil {
			return "fetch failed: " + e.Kind.String()
		}
		if e.URL == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%v: %q", e.Err, e.URL)
	}
}

// Unwrap returns the sentinel or the raw transport error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or zero if err is not a
// *FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
