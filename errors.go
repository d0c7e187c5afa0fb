package sweepline

import "github.com/cockroachdb/errors"

// Error is the error type returned by every operation in this package. Callers
// can match on its Type with errors.Is:
//
//	errors.Is(err, sweepline.ErrInvalidRange)
type Error struct {
	Type    ErrorType
	Message string
	Base    error
}

func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Base != nil {
		return e.Base.Error()
	}
	return "sweepline - " + e.Type.String()
}

func (e Error) Unwrap() error { return e.Base }

// Is allows an Error to be matched against its ErrorType.
func (e Error) Is(target error) bool {
	t, ok := target.(ErrorType)
	return ok && t == e.Type
}

type ErrorType byte

const (
	ErrUnknown ErrorType = iota
	// ErrInvalidRecord is returned when a record's boundaries cannot be read.
	ErrInvalidRecord
	// ErrInvalidRange is returned in strict mode when a record ends before it
	// starts.
	ErrInvalidRange
	// ErrInvalidOption is returned when an option does not fit the axis being
	// swept.
	ErrInvalidOption
	// ErrCanceled is returned when the context is canceled mid sweep.
	ErrCanceled
)

// Error implements error so that an ErrorType can be used as an errors.Is
// target.
func (t ErrorType) Error() string { return t.String() }

func (t ErrorType) String() string {
	switch t {
	case ErrInvalidRecord:
		return "invalid record"
	case ErrInvalidRange:
		return "invalid range"
	case ErrInvalidOption:
		return "invalid option"
	case ErrCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

func newDerivedError(t ErrorType, base error) error {
	return Error{Type: t, Message: base.Error(), Base: base}
}

func newSimpleError(t ErrorType, format string, args ...interface{}) error {
	return Error{Type: t, Base: errors.Newf(format, args...)}
}
