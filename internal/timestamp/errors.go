package timestamp

import "errors"

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidDate      = errors.New("invalid date")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrUnknownTimezone  = errors.New("unknown timezone")
)

// ConversionError is returned when a value cannot be turned into a
// calendar instant or rendered in the requested zone.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	return "conversion failed: " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
