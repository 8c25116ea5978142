// Package errors provides structured error types for the refprop-go library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries a human-readable detail, the engine's own
// diagnostic code where one exists, and a cause chain.
//
// Use the convenience constructors for common patterns:
//
//	err := errors.UnsupportedPair("T", "W")
//	err := errors.Computation(errors.PhaseFlash, 249, "TPFLSH error: pressure out of range")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// so callers can test against a prototype:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseSetup, Kind: errors.KindEngineSetup}) {
//	    // the engine rejected the fluid context
//	}
package errors
