package calculation

import "errors"

// Validation error kinds. Match with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid numeric input")
	ErrInflationTooHigh  = errors.New("inflation rate not below 100%")
	ErrReturnNotPositive = errors.New("expected return rate not above 0%")
)

// User-facing validation messages
const (
	MsgInvalidInput      = "Please fill in all fields with valid numbers"
	MsgInflationTooHigh  = "Inflation rate must be less than 100%"
	MsgReturnNotPositive = "Expected return rate must be greater than 0%"
)

// ValidationError reports rejected projection parameters. Error returns the
// message meant for the person who entered the values.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Kind }

func newValidationError(kind error, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
