package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeSourceFetch  ErrorType = "SOURCE_FETCH"
	ErrTypeHistoryLoad  ErrorType = "HISTORY_LOAD"
	ErrTypeHistoryWrite ErrorType = "HISTORY_WRITE"
	ErrTypeDelivery     ErrorType = "DELIVERY"
	ErrTypeConfig       ErrorType = "CONFIG"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
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
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

// IsType reports whether err (or anything it wraps) is a DomainError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Type == errType
	}
	return false
}

func SourceFetch(message string, err error) *DomainError {
	return New(ErrTypeSourceFetch, message, err)
}

func HistoryLoad(message string, err error) *DomainError {
	return New(ErrTypeHistoryLoad, message, err)
}

func HistoryWrite(message string, err error) *DomainError {
	return New(ErrTypeHistoryWrite, message, err)
}

func Delivery(message string, err error) *DomainError {
	return New(ErrTypeDelivery, message, err)
}

func Config(message string, err error) *DomainError {
	return New(ErrTypeConfig, message, err)
}
