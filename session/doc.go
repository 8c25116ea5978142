// Package session serializes access to a stateful calculation engine.
//
// The engine keeps a process-wide "currently loaded fluid" context and is
// not reentrant: two overlapping calls, or a call against the wrong loaded
// context, silently corrupt results. Session makes that safe. It owns its
// Engine exclusively, admits one call at a time, and re-establishes the
// caller's fluid context transparently whenever it differs from what the
// engine currently has loaded.
//
//	sess := session.New(eng)
//
//	err := sess.Invoke(identity, func(e refpropgo.Engine) error {
//	    props, err := e.FlashTP(300.0, 101.325)
//	    ...
//	})
//
// Every Fluid sharing a Session shares its serialization: calls from any
// goroutine block until the in-flight engine call finishes. Engine calls
// complete in microseconds to low milliseconds, so contention windows are
// short, but no upper bound is enforced and a call waiting on the lock
// cannot be cancelled — a known limitation of wrapping a synchronous,
// non-interruptible native engine.
//
// Context reconciliation is not error recovery: a successful reload is
// invisible to the caller. When the engine rejects a setup, the failure is
// surfaced and the previously loaded identity stays recorded, so the
// engine's real state and the session's bookkeeping never diverge.
package session
