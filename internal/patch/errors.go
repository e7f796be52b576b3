package patch

import "fmt"

// ErrorKind classifies patch errors for caller-side handling decisions
type ErrorKind int

const (
	// KindParse - the patch text is structurally invalid (bad header, bad
	// markers, counts disagreeing with header metadata)
	KindParse ErrorKind = iota

	// KindMismatch - the patch parsed but its source lines cannot be found
	// exactly in the original document
	KindMismatch

	// KindRange - a hunk would need to start before the cursor or past the
	// end of the document
	KindRange
)

// Error is the single error type produced by this package. Every failure mode
// is expected, recoverable input validation: the caller is supposed to surface
// Message to the user and request a fresh patch.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// ParseErrorf creates a structural parse error
func ParseErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindParse, Message: fmt.Sprintf(format, args...)}
}

// MismatchErrorf creates an anchor/content mismatch error
func MismatchErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindMismatch, Message: fmt.Sprintf(format, args...)}
}

// RangeErrorf creates an out-of-range hunk error
func RangeErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindRange, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or KindParse and false when err is
// not a patch error.
func KindOf(err error) (ErrorKind, bool) {
	if pe, ok := err.(*Error); ok {
		return pe.Kind, true
	}
	return KindParse, false
}
