package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSetup      Phase = "setup"      // fluid/mixture context establishment
	PhaseFlash      Phase = "flash"      // flash calculations
	PhaseSaturation Phase = "saturation" // saturation-line routines
	PhaseTransport  Phase = "transport"  // viscosity/conductivity routines
	PhaseDispatch   Phase = "dispatch"   // property key and pair resolution
	PhaseConvert    Phase = "convert"    // unit conversion
	PhaseInfo       Phase = "info"       // fluid constants lookup
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindUnsupportedPair   Kind = "unsupported_pair"
	KindUnsupportedOutput Kind = "unsupported_output"
	KindInvalidFluid      Kind = "invalid_fluid"
	KindEngineSetup       Kind = "engine_setup"
	KindComputation       Kind = "computation"
)

// Error is the structured error type used throughout the library
type Error struct {
	Phase  Phase
	Kind   Kind
	Detail string
	// Code is the engine's own diagnostic code, 0 when not applicable.
	Code  int
	Cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind, at any phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Convenience constructors for common error patterns

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// UnsupportedPair creates an error for an input key pair the dispatcher
// cannot resolve
func UnsupportedPair(key1, key2 string) *Error {
	return &Error{
		Phase: PhaseDispatch,
		Kind:  KindUnsupportedPair,
		Detail: fmt.Sprintf(
			"unsupported input pair (%s, %s); supported: (T,P) (T,D) (T,H) (T,S) (T,Q) (P,D) (P,H) (P,S) (P,Q) (D,H) (D,S) (H,S)",
			key1, key2),
	}
}

// UnsupportedOutput creates an error for an unknown output property key
func UnsupportedOutput(key string) *Error {
	return &Error{
		Phase: PhaseDispatch,
		Kind:  KindUnsupportedOutput,
		Detail: fmt.Sprintf(
			"unknown output property %q; supported: T P D H S Q CV CP W E ETA TCX", key),
	}
}

// InvalidFluid creates a fluid-definition error raised at construction time
func InvalidFluid(detail string) *Error {
	return &Error{
		Phase:  PhaseSetup,
		Kind:   KindInvalidFluid,
		Detail: detail,
	}
}

// SetupFailed wraps an engine rejection of a fluid/mixture context
func SetupFailed(identity string, cause error) *Error {
	return &Error{
		Phase:  PhaseSetup,
		Kind:   KindEngineSetup,
		Detail: fmt.Sprintf("establish fluid context %q", identity),
		Cause:  cause,
	}
}

// Computation creates an error for an engine-reported numeric failure,
// carrying the engine's diagnostic code and message
func Computation(phase Phase, code int, message string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindComputation,
		Code:   code,
		Detail: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
