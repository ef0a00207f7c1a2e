package transcript

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of failure classes surfaced to callers.
type Kind string

const (
	KindInvalidURL          Kind = "InvalidURL"
	KindVideoUnavailable    Kind = "VideoUnavailable"
	KindTranscriptsDisabled Kind = "TranscriptsDisabled"
	KindNoTranscriptFound   Kind = "NoTranscriptFound"
	KindUpstreamError       Kind = "UpstreamError"
)

// Status returns the HTTP-style status code bound to k.
// Unknown kinds report 500 like UpstreamError.
func (k Kind) Status() int {
	switch k {
	case KindInvalidURL:
		return http.StatusBadRequest
	case KindVideoUnavailable, KindNoTranscriptFound:
		return http.StatusNotFound
	case KindTranscriptsDisabled:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// Error is a classified failure. Every error leaving a component of this package is an *Error.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, kept for diagnostics
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the status code of the error's kind.
func (e *Error) Status() int { return e.Kind.Status() }

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func invalidURL(format string, args ...any) *Error {
	return newError(KindInvalidURL, nil, format, args...)
}

func videoUnavailable(id VideoID, reason string) *Error {
	if reason == "" {
		return newError(KindVideoUnavailable, nil, "video %s is unavailable", id)
	}
	return newError(KindVideoUnavailable, nil, "video %s is unavailable: %s", id, reason)
}

func transcriptsDisabled(id VideoID) *Error {
	return newError(KindTranscriptsDisabled, nil, "transcripts are disabled for video %s", id)
}

func noTranscriptFound(id VideoID) *Error {
	return newError(KindNoTranscriptFound, nil, "no transcript found for video %s", id)
}

func upstream(err error, format string, args ...any) *Error {
	return newError(KindUpstreamError, err, format, args...)
}

// Classify maps any error onto the taxonomy. A wrapped *Error keeps its kind;
// anything else becomes UpstreamError with the original message preserved.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return &Error{Kind: KindUpstreamError, Err: err}
}

// IsKind reports whether err classifies as kind.
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return Classify(err).Kind == kind
}
