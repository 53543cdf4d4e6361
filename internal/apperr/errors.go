package apperr

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type Kind string

const (
	KindValidation           Kind = "VALIDATION"
	KindNotFound             Kind = "NOT_FOUND"
	KindUnauthorized         Kind = "UNAUTHORIZED"
	KindDeadlineExpired      Kind = "DEADLINE_EXPIRED"
	KindDuplicateApplication Kind = "DUPLICATE_APPLICATION"
	KindInternal             Kind = "INTERNAL"
)

type DomainError struct {
	Kind    Kind
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(kind Kind, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Validation(message string, err error) *DomainError {
	return New(KindValidation, message, err)
}

func NotFound(message string, err error) *DomainError {
	return New(KindNotFound, message, err)
}

func Unauthorized(message string, err error) *DomainError {
	return New(KindUnauthorized, message, err)
}

func DeadlineExpired(message string, err error) *DomainError {
	return New(KindDeadlineExpired, message, err)
}

func DuplicateApplication(message string, err error) *DomainError {
	return New(KindDuplicateApplication, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(KindInternal, message, err)
}

// KindOf extracts the taxonomy kind of err, or KindInternal for
// anything outside the taxonomy.
func KindOf(err error) Kind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
