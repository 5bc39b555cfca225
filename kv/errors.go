package kv

import (
	"errors"
	"fmt"
)

// Structural errors, any of them aborts the build.
var (
	ErrRootPropertyNotAllowed  = errors.New("root node cannot have properties")
	ErrMissingColonInDirective = errors.New("directive is missing ':'")
	ErrTextAtRoot              = errors.New("text cannot be a root node")
	ErrEmptyDocument           = errors.New("empty document")
)

// Diagnostics, reported and otherwise ignored.
var (
	ErrUnknownDirective     = errors.New("unknown style directive")
	ErrEmptySubstitutionKey = errors.New("empty substitution key")
)

// StructuralError describes fatal problem with source structure. Line is 1
// based, 0 means the problem is not attributed to a particular line.
type StructuralError struct {
	Line    int
	Content string
	Err     error
}

func (e *StructuralError) Error() string {
	if e.Line == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Content)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}
