package nconf

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason discriminates the DecodeError taxonomy.
type Reason string

const (
	ReasonInputType              Reason = "InputTypeError"
	ReasonInvalidKey             Reason = "InvalidKey"
	ReasonUnclosedArray          Reason = "UnclosedArray"
	ReasonUnexpectedCloseBracket Reason = "UnexpectedCloseBracket"
	ReasonUnclosedString         Reason = "UnclosedString"
	ReasonUnclosedBlockString    Reason = "UnclosedBlockString"
	ReasonImportError            Reason = "ImportError"
	ReasonImportShapeError       Reason = "ImportShapeError"
	ReasonImportCycle            Reason = "ImportCycle"
)

// DecodeError is the single error type produced by Decode, carrying a
// 1-based line number and the raw offending line content. When raised
// inside an imported file, Line/RawLine describe the outer import site,
// and Message already folds in the inner failure reason and the
// imported path (see importer.go).
type DecodeError struct {
	Reason  Reason
	Message string
	Line    int // 1-based; 0 means "position unknown"
	RawLine string
	cause   error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %q", e.Message, e.Line, e.RawLine)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *DecodeError) Unwrap() error { return e.cause }

func newDecodeError(reason Reason, line int, rawLine, message string) *DecodeError {
	return &DecodeError{Reason: reason, Message: message, Line: line, RawLine: rawLine}
}

// decodeErrorCarrier is the panic payload used by the fail/failf pattern
// below: internal helpers panic with a typed error instead of threading
// an error return through every call; the public entry point recovers.
type decodeErrorCarrier struct {
	err error
}

func fail(err error) {
	panic(decodeErrorCarrier{err})
}

func failf(format string, args ...interface{}) {
	panic(decodeErrorCarrier{fmt.Errorf(format, args...)})
}

// failAt raises a DecodeError at the given 1-based line.
func failAt(reason Reason, line int, rawLine, format string, args ...interface{}) {
	fail(newDecodeError(reason, line, rawLine, fmt.Sprintf(format, args...)))
}

// handleDecodeErr recovers a decodeErrorCarrier panic into *err, or
// re-panics anything else (a genuine programming bug should not be
// swallowed as a decode failure).
func handleDecodeErr(err *error) {
	if v := recover(); v != nil {
		if c, ok := v.(decodeErrorCarrier); ok {
			*err = c.err
			return
		}
		panic(v)
	}
}

// wrapImportErr builds an ImportError naming the original path and the
// underlying reason, and retains the cause via github.com/pkg/errors so
// callers can still reach the root failure with errors.Cause/errors.Unwrap.
func wrapImportErr(path string, line int, rawLine string, cause error) *DecodeError {
	wrapped := errors.Wrapf(cause, "import %q failed", path)
	return &DecodeError{
		Reason:  ReasonImportError,
		Message: wrapped.Error(),
		Line:    line,
		RawLine: rawLine,
		cause:   wrapped,
	}
}
