package session

import (
	"sync"

	"go.uber.org/zap"

	refpropgo "github.com/thermoflow/refprop-go"
	"github.com/thermoflow/refprop-go/errors"
)

// Session owns the single serialized channel to an Engine. All engine
// access must go through Invoke; nothing else may call the engine while a
// Session wraps it.
//
// A Session is safe for concurrent use. Create exactly one per engine
// instance and share it across every Fluid built on that engine.
type Session struct {
	mu     sync.Mutex
	engine refpropgo.Engine
	log    *zap.Logger

	// loaded state, guarded by mu
	current refpropgo.FluidIdentity
	hasCur  bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for context-switch diagnostics.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// New wraps an engine in a session. The session takes exclusive ownership
// of the engine.
func New(engine refpropgo.Engine, opts ...Option) *Session {
	s := &Session{
		engine: engine,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invoke runs op against the engine with the given fluid context
// established. It blocks until any in-flight call finishes, reloads the
// engine's fluid context if id differs from what is currently loaded, and
// releases the guard on every exit path.
//
// A setup failure is returned as an engine_setup error and leaves the
// previously loaded identity in effect; op is not run. Errors from op are
// returned unchanged.
func (s *Session) Invoke(id refpropgo.FluidIdentity, op func(refpropgo.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(id); err != nil {
		return err
	}
	return op(s.engine)
}

// ensureLoaded re-establishes the engine context when needed.
// Caller must hold mu.
func (s *Session) ensureLoaded(id refpropgo.FluidIdentity) error {
	if s.hasCur && s.current.Equal(id) {
		return nil
	}
	if err := s.engine.Setup(id); err != nil {
		// Loaded state unchanged: the engine still has the previous
		// context (or none), and s.current must keep saying so.
		return errors.SetupFailed(id.String(), err)
	}
	if s.hasCur {
		s.log.Debug("switched engine fluid context",
			zap.Stringer("from", s.current),
			zap.Stringer("to", id),
		)
	} else {
		s.log.Debug("loaded engine fluid context", zap.Stringer("fluid", id))
	}
	s.current = id
	s.hasCur = true
	return nil
}

// Loaded returns the identity currently established in the engine and
// whether any is. It reflects the engine's state, not the most recent
// request: a failed setup does not change it.
func (s *Session) Loaded() (refpropgo.FluidIdentity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasCur
}
