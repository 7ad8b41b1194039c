package apperr

import (
	"context"
	"errors"
	"net"
)

// Kind classifies a failure so callers can branch on it without string matching.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindAuth              Kind = "auth_error"
	KindRateLimited       Kind = "rate_limited"
	KindProvider          Kind = "provider_error"
	KindTimeout           Kind = "timeout"
	KindMalformedResponse Kind = "malformed_response"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindExtraction        Kind = "extraction_error"
	KindScrape            Kind = "scrape_error"
	KindNotFound          Kind = "not_found"
	KindInternal          Kind = "internal"
)

// Error is a human-readable message tagged with a Kind.
// Raw holds untrusted upstream output kept for diagnosis (e.g. a model reply that failed to decode).
type Error struct {
	Kind    Kind
	Message string
	Raw     string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, apperr.ErrAuth) works
// regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrAuth              = &Error{Kind: KindAuth}
	ErrRateLimited       = &Error{Kind: KindRateLimited}
	ErrProvider          = &Error{Kind: KindProvider}
	ErrTimeout           = &Error{Kind: KindTimeout}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrUnsupportedFormat = &Error{Kind: KindUnsupportedFormat}
	ErrExtraction        = &Error{Kind: KindExtraction}
	ErrScrape            = &Error{Kind: KindScrape}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

// New builds an *Error of the given kind.
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error { return New(KindValidation, message, nil) }

func Auth(message string, err error) *Error { return New(KindAuth, message, err) }

// RateLimited reports an upstream 429; the caller may retry later.
func RateLimited(message string, err error) *Error { return New(KindRateLimited, message, err) }

func Provider(message string, err error) *Error { return New(KindProvider, message, err) }

func Timeout(message string, err error) *Error { return New(KindTimeout, message, err) }

func UnsupportedFormat(message string) *Error { return New(KindUnsupportedFormat, message, nil) }

func Extraction(message string, err error) *Error { return New(KindExtraction, message, err) }

func Scrape(message string, err error) *Error { return New(KindScrape, message, err) }

func NotFound(message string) *Error { return New(KindNotFound, message, nil) }

// Malformed reports generation output that violated the expected JSON contract.
func Malformed(message, raw string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: message, Raw: raw, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsTimeout reports whether err came from an exceeded deadline or a network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
