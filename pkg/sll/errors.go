package sll

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFunction is returned for a call of a function without rules.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrArityMismatch is returned when a call and a rule disagree on the
	// number of arguments.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrDuplicateRule is reported by Validate for a redefined function or
	// g-rule alternative.
	ErrDuplicateRule = errors.New("duplicate rule")
)

// ParseError describes malformed SLL source.
type ParseError struct {
	// Pos is the byte offset of the offending token.
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}
