package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("missing bearer token")
	ErrNotFound     = errors.New("not found")
)

// opError ties an error to the handler operation that produced it.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%s: %v", e.op, e.kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.op, e.kind, e.err)
}

func (e *opError) Unwrap() []error {
	if e.err == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.err}
}

// newKind reports kind for op.
func newKind(op string, kind error) error { return &opError{op: op, kind: kind} }

// wrapKind reports kind for op with err as the cause.
func wrapKind(op string, kind, err error) error { return &opError{op: op, kind: kind, err: err} }
