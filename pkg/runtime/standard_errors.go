package runtime

import (
	"errors"
	"fmt"
)

// FailureKind names a recoverable, user-triggered failure category. The
// engine surfaces every such condition through the ordinary (value, error)
// channel; whether a failure becomes a language-level exception object, a
// diagnostic, or an abort is the surrounding evaluator's decision.
type FailureKind string

const (
	FailureTypeError            FailureKind = "TypeError"
	FailureValueError           FailureKind = "ValueError"
	FailureOverflow             FailureKind = "OverflowError"
	FailureDivisionByZero       FailureKind = "DivisionByZeroError"
	FailureNotCallable          FailureKind = "NotCallableError"
	FailureUnsupportedIteration FailureKind = "UnsupportedIterationError"
)

// Failure is a typed failure value implementing error.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

// AsFailure extracts the typed failure from an error chain, if present.
func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

func newTypeError(format string, args ...any) error {
	return &Failure{Kind: FailureTypeError, Message: fmt.Sprintf(format, args...)}
}

func newValueError(format string, args ...any) error {
	return &Failure{Kind: FailureValueError, Message: fmt.Sprintf(format, args...)}
}

func newOverflowError(operation string) error {
	message := operation
	if message == "" {
		message = "integer overflow"
	}
	return &Failure{Kind: FailureOverflow, Message: message}
}

func newDivisionByZeroError() error {
	return &Failure{Kind: FailureDivisionByZero, Message: "division by zero"}
}

func newNotCallableError(k Kind) error {
	return &Failure{Kind: FailureNotCallable, Message: fmt.Sprintf("'%s' object is not callable", k)}
}

func newUnsupportedIterationError(format string, args ...any) error {
	return &Failure{Kind: FailureUnsupportedIteration, Message: fmt.Sprintf(format, args...)}
}
