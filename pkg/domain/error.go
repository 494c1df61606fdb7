package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error carries a classification code next to the wrapped cause, so callers can
// tell which kind of per-entity failure happened without parsing messages.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

// Is reports whether target is the classification code of e.
func (e *Error) Is(target error) bool {
	return e.code != nil && target == e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func NewErrorf(code error, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

var (
	// ErrMalformedInput is returned for features with missing, invalid or empty geometry
	ErrMalformedInput = errors.New("malformed input")
	// ErrNoNetworkCoverage is returned when a point cannot be projected because the network has no edges
	ErrNoNetworkCoverage = errors.New("no network coverage")
	// ErrNoPath is returned when origin and destination lie in different components
	ErrNoPath = errors.New("no path")
	// ErrNodeNotFound is returned for node identifiers that were never added to the graph
	ErrNodeNotFound = errors.New("node not found")
	// ErrDegenerateGeometry is returned by polygon validity and intersection checks
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrNoGeometry is returned when a node path cannot be expanded into a line
	ErrNoGeometry = errors.New("no geometry")
	// ErrBadParamInput is returned if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
)

var codes = []error{
	ErrMalformedInput,
	ErrNoNetworkCoverage,
	ErrNoPath,
	ErrNodeNotFound,
	ErrDegenerateGeometry,
	ErrNoGeometry,
	ErrBadParamInput,
}

// Reason maps err to a short snake_case reason for reports. Context
// deadlines become "timeout", unclassified errors "internal".
func Reason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	for _, code := range codes {
		if errors.Is(err, code) {
			return reasons[code]
		}
	}
	return "internal"
}

var reasons = map[error]string{
	ErrMalformedInput:     "malformed_input",
	ErrNoNetworkCoverage:  "no_network_coverage",
	ErrNoPath:             "no_path",
	ErrNodeNotFound:       "node_not_found",
	ErrDegenerateGeometry: "degenerate_geometry",
	ErrNoGeometry:         "no_geometry",
	ErrBadParamInput:      "bad_param_input",
}
