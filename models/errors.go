package models

import "errors"

// ErrorKind identifies which validation rule a request broke. The
// values double as the stable identifiers surfaced to callers.
type ErrorKind string

const (
	ErrInvalidBetID      ErrorKind = "InvalidBetId"
	ErrInvalidOption     ErrorKind = "InvalidOption"
	ErrInsufficientFunds ErrorKind = "InsufficientFunds"
	ErrConflictingOption ErrorKind = "ConflictingOption"
	ErrBetClosed         ErrorKind = "BetClosed"
	ErrAlreadyCompleted  ErrorKind = "AlreadyCompleted"
	ErrNotAuthorized     ErrorKind = "NotAuthorized"
	ErrInvalidReward     ErrorKind = "InvalidReward"
)

// ValidationError is a rejected request. The message is written for the
// end user and safe to echo back verbatim.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Validation builds a ValidationError as an error.
func Validation(kind ErrorKind, message string) error {
	return &ValidationError{Kind: kind, Message: message}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
