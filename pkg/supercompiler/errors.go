package supercompiler

import (
	"errors"

	"github.com/gitrdm/spsc/pkg/sll"
)

var (
	// ErrUnknownFunction is returned when driving reaches a call of a
	// function the program does not define.
	ErrUnknownFunction = sll.ErrUnknownFunction

	// ErrArityMismatch is returned when a call and its rule disagree on
	// the number of arguments.
	ErrArityMismatch = sll.ErrArityMismatch

	// ErrNonExhaustive is returned when a g-function has no rule for the
	// constructor of its scrutinee.
	ErrNonExhaustive = errors.New("non-exhaustive pattern match")

	// ErrNotDrivable is returned when Drive is asked to step a variable or
	// a pattern, which are already in normal form.
	ErrNotDrivable = errors.New("expression cannot be driven")

	// ErrStepLimitExceeded indicates that tree construction was aborted
	// after Config.MaxSteps growth steps. The tree returned with it is
	// incomplete.
	ErrStepLimitExceeded = errors.New("step limit exceeded")
)
