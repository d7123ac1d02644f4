package cart

import (
	"errors"
	"fmt"
)

type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
)

// Error message constants for the cart.
const (
	ErrMsgProductIDRequired = "Product ID is required"
	ErrMsgSizeRequired      = "A size must be selected before adding to cart"
	ErrMsgQuantityPositive  = "Quantity must be positive"
	ErrMsgItemNotInCart     = "Item not in cart"
)

func (s StatusCode) String() string {
	switch s {
	case StatusInvalidArgument:
		return "INVALID_ARGUMENT"
	case StatusFailedPrecondition:
		return "FAILED_PRECONDITION"
	default:
		return "UNKNOWN"
	}
}

// CommandError reports a caller that broke the cart contract. It never
// describes an ordinary shopping outcome.
type CommandError struct {
	Code    StatusCode
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

func NewFailedPrecondition(message string) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: message}
}

func NewFailedPreconditionf(format string, args ...interface{}) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: fmt.Sprintf(format, args...)}
}

// IsPreconditionViolation reports whether err means the caller added to the
// cart without a committed size selection.
func IsPreconditionViolation(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == StatusFailedPrecondition
}
