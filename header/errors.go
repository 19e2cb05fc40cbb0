package header

import "github.com/ghettovoice/conneg/internal/errorutil"

// Error represents a header error.
// See [errorutil.Error].
type Error = errorutil.Error

// Weight construction errors.
const (
	// ErrInvalidWeight is returned when a weight cannot be interpreted as a number.
	ErrInvalidWeight Error = "invalid weight"
	// ErrOutOfRange is returned when a weight is outside of [0, 1].
	ErrOutOfRange Error = "weight out of range"
	// ErrInvalidPrecision is returned when a weight has more than 3 decimal digits.
	ErrInvalidPrecision Error = "invalid weight precision"
)

// Parsing errors.
const (
	// ErrMalformedInput is returned when a single entry does not conform to the header grammar.
	ErrMalformedInput Error = "malformed input"
	// ErrUnsupportedHeader is returned by [Parse] for header names outside of the Accept-* family.
	ErrUnsupportedHeader Error = "unsupported header"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}
