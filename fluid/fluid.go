package fluid

import (
	"math"

	"go.uber.org/zap"

	refpropgo "github.com/thermoflow/refprop-go"
	"github.com/thermoflow/refprop-go/errors"
	"github.com/thermoflow/refprop-go/session"
	"github.com/thermoflow/refprop-go/units"
)

// Fluid is the public handle for property calculations on one fluid or
// mixture. It is immutable and safe for concurrent use; any number of
// Fluids may share one session, which transparently re-establishes the
// engine's context as calls interleave.
//
// Inputs and outputs are in the Fluid's configured unit system; quality is
// always a mole percent (0-100).
type Fluid struct {
	id   refpropgo.FluidIdentity
	ses  *session.Session
	conv units.Converter
	log  *zap.Logger
}

type config struct {
	units units.UnitSystem
	log   *zap.Logger
}

// Option configures a Fluid at construction.
type Option func(*config)

// WithUnits selects the unit system for all inputs and outputs.
// The default is the engine-native system.
func WithUnits(u units.UnitSystem) Option {
	return func(c *config) { c.units = u }
}

// WithLogger sets the logger for calculation diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a handle for a pure fluid (or a named predefined mixture).
// The identity is validated and loaded into the engine once here, so an
// unknown fluid fails at construction rather than on first use.
func New(ses *session.Session, name string, opts ...Option) (*Fluid, error) {
	id, err := refpropgo.Pure(name)
	if err != nil {
		return nil, err
	}
	return attach(ses, id, opts)
}

// NewMixture creates a handle for a custom mixture. Composition errors are
// caught before the engine is touched.
func NewMixture(ses *session.Session, components []refpropgo.Component, opts ...Option) (*Fluid, error) {
	id, err := refpropgo.Mixture(components)
	if err != nil {
		return nil, err
	}
	return attach(ses, id, opts)
}

func attach(ses *session.Session, id refpropgo.FluidIdentity, opts []Option) (*Fluid, error) {
	cfg := config{units: units.Native(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	// One engine round-trip: proves the fluid loads and fetches the molar
	// mass the converter needs for mass-basis units.
	var mm float64
	err := ses.Invoke(id, func(e refpropgo.Engine) error {
		m, err := e.MolarMass()
		if err != nil {
			return err
		}
		mm = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	cfg.log.Debug("fluid handle created",
		zap.Stringer("fluid", id),
		zap.Float64("molar_mass", mm),
		zap.Stringer("temperature_unit", cfg.units.Temperature),
		zap.Stringer("pressure_unit", cfg.units.Pressure),
	)

	return &Fluid{
		id:   id,
		ses:  ses,
		conv: units.NewConverter(cfg.units, mm),
		log:  cfg.log,
	}, nil
}

// Identity returns the fluid identity this handle computes for.
func (f *Fluid) Identity() refpropgo.FluidIdentity { return f.id }

// Units returns the configured unit system.
func (f *Fluid) Units() units.UnitSystem { return f.conv.Units }

// Converter returns the unit converter bound to this fluid's molar mass.
func (f *Fluid) Converter() units.Converter { return f.conv }

// MolarMass returns the (mixture-averaged) molar mass in g/mol.
func (f *Fluid) MolarMass() float64 { return f.conv.MolarMass }

// ── Generic property lookup ──────────────────────────────────────────

// Get computes one output property from an input state pair. The pair may
// be given in either order; values travel with their keys.
func (f *Fluid) Get(output, key1 Key, v1 float64, key2 Key, v2 float64) (float64, error) {
	if !isValid(output) {
		return 0, errors.UnsupportedOutput(output.String())
	}
	req, err := f.nativeRequest(key1, v1, key2, v2)
	if err != nil {
		return 0, err
	}

	var out float64
	err = f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		props, err := f.resolve(e, req)
		if err != nil {
			return err
		}
		if output == KeyEta || output == KeyTcx {
			tr, err := e.Transport(props.Temperature, props.Density)
			if err != nil {
				return err
			}
			if output == KeyEta {
				out = f.conv.EtaFromNative(tr.Viscosity)
			} else {
				out = f.conv.TcxFromNative(tr.ThermalConductivity)
			}
			return nil
		}
		out = f.extract(output, props)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return out, nil
}

// GetByName is Get with string property codes, accepting the usual aliases
// (RHO for D, A for W, U for E, V/VIS for ETA, L/LAMBDA for TCX).
func (f *Fluid) GetByName(output, key1 string, v1 float64, key2 string, v2 float64) (float64, error) {
	outK, ok := parseKey(output)
	if !ok {
		return 0, errors.UnsupportedOutput(output)
	}
	k1, ok1 := parseKey(key1)
	k2, ok2 := parseKey(key2)
	if !ok1 || !ok2 {
		return 0, errors.UnsupportedPair(key1, key2)
	}
	return f.Get(outK, k1, v1, k2, v2)
}

// nativeRequest normalizes the pair and converts both values to native
// engine units, rejecting non-finite inputs before the engine is touched.
func (f *Fluid) nativeRequest(k1 Key, v1 float64, k2 Key, v2 float64) (request, error) {
	req, err := normalizePair(k1, v1, k2, v2)
	if err != nil {
		f.log.Debug("rejected input pair",
			zap.Stringer("key1", k1),
			zap.Stringer("key2", k2),
		)
		return request{}, err
	}
	if req.vx, err = f.inputToNative(req.x, req.vx); err != nil {
		return request{}, err
	}
	if req.vy, err = f.inputToNative(req.y, req.vy); err != nil {
		return request{}, err
	}
	return req, nil
}

func (f *Fluid) inputToNative(k Key, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.InvalidInput(errors.PhaseDispatch, "input %s must be finite, got %v", k, v)
	}
	if k == KeyQ {
		return units.QToFraction(v)
	}
	return f.conv.ToNative(quantityOf(k), v), nil
}

// resolve computes the native-unit state for a normalized request.
// Caller must hold the session (this runs inside Invoke).
func (f *Fluid) resolve(e refpropgo.Engine, req request) (refpropgo.ThermoProps, error) {
	if req.quality {
		return f.qualityState(e, req.x == KeyP, req.vx, req.vy)
	}
	return flashRoutines[pairKey{req.x, req.y}](e, req.vx, req.vy)
}

// extract converts one field of a native-unit state to the configured
// system.
func (f *Fluid) extract(k Key, p refpropgo.ThermoProps) float64 {
	switch k {
	case KeyT:
		return f.conv.TFromNative(p.Temperature)
	case KeyP:
		return f.conv.PFromNative(p.Pressure)
	case KeyD:
		return f.conv.DFromNative(p.Density)
	case KeyH:
		return f.conv.HFromNative(p.Enthalpy)
	case KeyS:
		return f.conv.SFromNative(p.Entropy)
	case KeyQ:
		return units.QFromFraction(p.Quality)
	case KeyCv:
		return f.conv.SFromNative(p.Cv)
	case KeyCp:
		return f.conv.SFromNative(p.Cp)
	case KeyW:
		return p.SoundSpeed
	default: // KeyE
		return f.conv.HFromNative(p.InternalEnergy)
	}
}

func (f *Fluid) fromNativeProps(p refpropgo.ThermoProps) refpropgo.ThermoProps {
	return refpropgo.ThermoProps{
		Temperature:    f.conv.TFromNative(p.Temperature),
		Pressure:       f.conv.PFromNative(p.Pressure),
		Density:        f.conv.DFromNative(p.Density),
		Enthalpy:       f.conv.HFromNative(p.Enthalpy),
		Entropy:        f.conv.SFromNative(p.Entropy),
		Cv:             f.conv.SFromNative(p.Cv),
		Cp:             f.conv.SFromNative(p.Cp),
		SoundSpeed:     p.SoundSpeed,
		Quality:        units.QFromFraction(p.Quality),
		InternalEnergy: f.conv.HFromNative(p.InternalEnergy),
	}
}

func quantityOf(k Key) units.Quantity {
	switch k {
	case KeyT:
		return units.Temperature
	case KeyP:
		return units.Pressure
	case KeyD:
		return units.Density
	case KeyH, KeyE:
		return units.Energy
	case KeyS, KeyCv, KeyCp:
		return units.Entropy
	case KeyEta:
		return units.Viscosity
	case KeyTcx:
		return units.Conductivity
	default: // Q, W
		return units.Dimensionless
	}
}

// ── Typed state lookups ──────────────────────────────────────────────

func (f *Fluid) props(k1 Key, v1 float64, k2 Key, v2 float64) (refpropgo.ThermoProps, error) {
	req, err := f.nativeRequest(k1, v1, k2, v2)
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	var native refpropgo.ThermoProps
	err = f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		native, err = f.resolve(e, req)
		return err
	})
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	return f.fromNativeProps(native), nil
}

// PropsTP computes the state at temperature and pressure.
func (f *Fluid) PropsTP(t, p float64) (refpropgo.ThermoProps, error) { return f.props(KeyT, t, KeyP, p) }

// PropsPH computes the state at pressure and enthalpy.
func (f *Fluid) PropsPH(p, h float64) (refpropgo.ThermoProps, error) { return f.props(KeyP, p, KeyH, h) }

// PropsPS computes the state at pressure and entropy.
func (f *Fluid) PropsPS(p, s float64) (refpropgo.ThermoProps, error) { return f.props(KeyP, p, KeyS, s) }

// PropsTD computes the state at temperature and density.
func (f *Fluid) PropsTD(t, d float64) (refpropgo.ThermoProps, error) { return f.props(KeyT, t, KeyD, d) }

// PropsPD computes the state at pressure and density.
func (f *Fluid) PropsPD(p, d float64) (refpropgo.ThermoProps, error) { return f.props(KeyP, p, KeyD, d) }

// PropsTH computes the state at temperature and enthalpy.
func (f *Fluid) PropsTH(t, h float64) (refpropgo.ThermoProps, error) { return f.props(KeyT, t, KeyH, h) }

// PropsTS computes the state at temperature and entropy.
func (f *Fluid) PropsTS(t, s float64) (refpropgo.ThermoProps, error) { return f.props(KeyT, t, KeyS, s) }

// PropsDH computes the state at density and enthalpy.
func (f *Fluid) PropsDH(d, h float64) (refpropgo.ThermoProps, error) { return f.props(KeyD, d, KeyH, h) }

// PropsDS computes the state at density and entropy.
func (f *Fluid) PropsDS(d, s float64) (refpropgo.ThermoProps, error) { return f.props(KeyD, d, KeyS, s) }

// PropsHS computes the state at enthalpy and entropy.
func (f *Fluid) PropsHS(h, s float64) (refpropgo.ThermoProps, error) { return f.props(KeyH, h, KeyS, s) }

// PropsTQ computes the two-phase state at temperature and quality
// (percent, 0-100). Below 50% the bubble curve fixes the pressure, from
// 50% up the dew curve does, so zeotropic blends land on the branch their
// quality implies.
func (f *Fluid) PropsTQ(t, q float64) (refpropgo.ThermoProps, error) { return f.props(KeyT, t, KeyQ, q) }

// PropsPQ computes the two-phase state at pressure and quality (percent).
func (f *Fluid) PropsPQ(p, q float64) (refpropgo.ThermoProps, error) { return f.props(KeyP, p, KeyQ, q) }

// qualityState composes a two-phase state from the saturation line: the
// branch-selected saturation routine fixes T, P and the phase densities,
// and the single-phase endpoints are blended by quality. Density combines
// harmonically (volumes are additive); the remaining properties linearly.
// q is a fraction here.
func (f *Fluid) qualityState(e refpropgo.Engine, byPressure bool, v, q float64) (refpropgo.ThermoProps, error) {
	branch := refpropgo.BranchBubble
	if q >= 0.5 {
		branch = refpropgo.BranchDew
	}

	var sat refpropgo.SaturationProps
	var err error
	if byPressure {
		sat, err = e.SaturationP(v, branch)
	} else {
		sat, err = e.SaturationT(v, branch)
	}
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}

	switch {
	case q <= 0:
		props, err := e.Therm(sat.Temperature, sat.DensityLiquid)
		if err != nil {
			return refpropgo.ThermoProps{}, err
		}
		props.Pressure = sat.Pressure
		props.Quality = 0
		return props, nil
	case q >= 1:
		props, err := e.Therm(sat.Temperature, sat.DensityVapor)
		if err != nil {
			return refpropgo.ThermoProps{}, err
		}
		props.Pressure = sat.Pressure
		props.Quality = 1
		return props, nil
	}

	liq, err := e.Therm(sat.Temperature, sat.DensityLiquid)
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	vap, err := e.Therm(sat.Temperature, sat.DensityVapor)
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	lerp := func(a, b float64) float64 { return a + q*(b-a) }
	return refpropgo.ThermoProps{
		Temperature:    sat.Temperature,
		Pressure:       sat.Pressure,
		Density:        1 / ((1-q)/sat.DensityLiquid + q/sat.DensityVapor),
		Enthalpy:       lerp(liq.Enthalpy, vap.Enthalpy),
		Entropy:        lerp(liq.Entropy, vap.Entropy),
		Cv:             lerp(liq.Cv, vap.Cv),
		Cp:             lerp(liq.Cp, vap.Cp),
		SoundSpeed:     lerp(liq.SoundSpeed, vap.SoundSpeed),
		Quality:        q,
		InternalEnergy: lerp(liq.InternalEnergy, vap.InternalEnergy),
	}, nil
}

// ── Saturation, transport, constants ─────────────────────────────────

func validBranch(b refpropgo.SaturationBranch) error {
	if b != refpropgo.BranchBubble && b != refpropgo.BranchDew {
		return errors.InvalidInput(errors.PhaseSaturation, "unknown saturation branch %d", int(b))
	}
	return nil
}

func (f *Fluid) fromNativeSat(s refpropgo.SaturationProps) refpropgo.SaturationProps {
	return refpropgo.SaturationProps{
		Temperature:   f.conv.TFromNative(s.Temperature),
		Pressure:      f.conv.PFromNative(s.Pressure),
		DensityLiquid: f.conv.DFromNative(s.DensityLiquid),
		DensityVapor:  f.conv.DFromNative(s.DensityVapor),
	}
}

// SaturationT resolves the saturation state at temperature t on the given
// branch. For pure fluids the branches coincide.
func (f *Fluid) SaturationT(t float64, branch refpropgo.SaturationBranch) (refpropgo.SaturationProps, error) {
	if err := validBranch(branch); err != nil {
		return refpropgo.SaturationProps{}, err
	}
	tn, err := f.inputToNative(KeyT, t)
	if err != nil {
		return refpropgo.SaturationProps{}, err
	}
	var sat refpropgo.SaturationProps
	err = f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		sat, err = e.SaturationT(tn, branch)
		return err
	})
	if err != nil {
		return refpropgo.SaturationProps{}, err
	}
	return f.fromNativeSat(sat), nil
}

// SaturationP resolves the saturation state at pressure p on the given
// branch.
func (f *Fluid) SaturationP(p float64, branch refpropgo.SaturationBranch) (refpropgo.SaturationProps, error) {
	if err := validBranch(branch); err != nil {
		return refpropgo.SaturationProps{}, err
	}
	pn, err := f.inputToNative(KeyP, p)
	if err != nil {
		return refpropgo.SaturationProps{}, err
	}
	var sat refpropgo.SaturationProps
	err = f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		sat, err = e.SaturationP(pn, branch)
		return err
	})
	if err != nil {
		return refpropgo.SaturationProps{}, err
	}
	return f.fromNativeSat(sat), nil
}

// Transport computes viscosity and thermal conductivity at temperature and
// density.
func (f *Fluid) Transport(t, d float64) (refpropgo.TransportProps, error) {
	tn, err := f.inputToNative(KeyT, t)
	if err != nil {
		return refpropgo.TransportProps{}, err
	}
	dn, err := f.inputToNative(KeyD, d)
	if err != nil {
		return refpropgo.TransportProps{}, err
	}
	var tr refpropgo.TransportProps
	err = f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		tr, err = e.Transport(tn, dn)
		return err
	})
	if err != nil {
		return refpropgo.TransportProps{}, err
	}
	return refpropgo.TransportProps{
		Viscosity:           f.conv.EtaFromNative(tr.Viscosity),
		ThermalConductivity: f.conv.TcxFromNative(tr.ThermalConductivity),
	}, nil
}

// CriticalPoint returns the critical point in the configured units.
func (f *Fluid) CriticalPoint() (refpropgo.CriticalProps, error) {
	var cp refpropgo.CriticalProps
	err := f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		var err error
		cp, err = e.CriticalPoint()
		return err
	})
	if err != nil {
		return refpropgo.CriticalProps{}, err
	}
	return refpropgo.CriticalProps{
		Temperature: f.conv.TFromNative(cp.Temperature),
		Pressure:    f.conv.PFromNative(cp.Pressure),
		Density:     f.conv.DFromNative(cp.Density),
	}, nil
}

// Info returns the intrinsic fluid constants. They are always in native
// units, whatever unit system the Fluid was configured with: constants
// describe the fluid, not a state point.
func (f *Fluid) Info() (refpropgo.FluidInfo, error) {
	var info refpropgo.FluidInfo
	err := f.ses.Invoke(f.id, func(e refpropgo.Engine) error {
		var err error
		info, err = e.Info()
		return err
	})
	if err != nil {
		return refpropgo.FluidInfo{}, err
	}
	return info, nil
}
