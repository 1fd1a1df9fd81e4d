package bgg

import (
	"errors"
	"fmt"
)

var (
	// ErrRetryExhausted is returned when the upstream kept answering 202 until the retry cap.
	ErrRetryExhausted = errors.New("catalog retry limit reached")
	// ErrUnexpectedStatus is returned for any status other than 200 and 202.
	ErrUnexpectedStatus = errors.New("catalog returned unexpected status")
	// ErrTransport is returned when the request could not be completed.
	ErrTransport = errors.New("catalog request failed")
	// ErrDataShape is returned when a payload misses or malforms an expected field.
	ErrDataShape = errors.New("malformed catalog data")
)

// FetchError describes a terminal failure of a single catalog request.
// It matches one of ErrRetryExhausted, ErrUnexpectedStatus or ErrTransport with errors.Is.
type FetchError struct {
	// Kind is the sentinel classifying the failure.
	Kind error
	// Path is the API path that was requested.
	Path string
	// Status is the last HTTP status received, zero on transport failures.
	Status int
	// Retries is the number of pending responses seen before the failure.
	Retries int
	// Body is an excerpt of the last response body.
	Body string
	// Err is the underlying transport error, if any.
	Err error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Kind, e.Path)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Retries > 0 {
		msg += fmt.Sprintf(" after %d retries", e.Retries)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the failure kind.
func (e *FetchError) Is(target error) bool {
	return target == e.Kind
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
