package enginetest

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	refpropgo "github.com/thermoflow/refprop-go"
	"github.com/thermoflow/refprop-go/errors"
)

const (
	// gasConstant in J/(mol·K); with density in mol/L this makes
	// P = D·R·T come out in kPa directly.
	gasConstant = 8.31446261815324

	// enthalpySlope couples vapor enthalpy to density (J/mol per mol/L)
	// so that T-H and D-H states are well-posed in the model.
	enthalpySlope = 100.0

	// troutonRatio sets the heat of vaporization as Hvap = ratio·R·Tb.
	troutonRatio = 8.5

	bisectIters = 200
)

// Engine is a deterministic in-memory refpropgo.Engine. The zero value is
// not usable; create one with New.
type Engine struct {
	fluids    map[string]FluidSpec
	failSetup map[string]bool
	callDelay time.Duration

	inFlight atomic.Int32
	overlaps atomic.Int64
	setups   atomic.Int64
	calls    atomic.Int64

	// loaded context. Written only by Setup and read by every routine
	// without synchronization, exactly like the real engine's global:
	// the session is responsible for making that safe.
	loaded *loadedFluid
}

type loadedFluid struct {
	id    refpropgo.FluidIdentity
	specs []FluidSpec
	fracs []float64

	// mole-fraction-weighted aggregates
	molarMass float64
	cp0       float64
	liqDens   float64
	tc        float64
	pc        float64
	dc        float64
	ttrp      float64
	tb        float64
	acf       float64
}

// Option configures a test engine.
type Option func(*Engine)

// WithCallDelay makes every engine entry sleep for d, widening the window
// in which an unserialized concurrent call would be observed.
func WithCallDelay(d time.Duration) Option {
	return func(e *Engine) { e.callDelay = d }
}

// WithFluid registers (or overrides) a fluid definition.
func WithFluid(name string, spec FluidSpec) Option {
	return func(e *Engine) { e.fluids[name] = spec }
}

// New creates a test engine preloaded with the builtin fluid table.
func New(opts ...Option) *Engine {
	e := &Engine{
		fluids:    make(map[string]FluidSpec, len(builtinFluids)),
		failSetup: make(map[string]bool),
	}
	for name, spec := range builtinFluids {
		e.fluids[name] = spec
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FailSetup makes every future Setup of the named fluid fail, simulating a
// missing or corrupt fluid file.
func (e *Engine) FailSetup(name string) { e.failSetup[name] = true }

// SetupCount reports how many successful Setup calls have run.
func (e *Engine) SetupCount() int64 { return e.setups.Load() }

// Calls reports the total number of engine entries.
func (e *Engine) Calls() int64 { return e.calls.Load() }

// Overlaps reports how many engine entries observed another call in
// flight. Any nonzero value means the caller broke the serialization
// contract.
func (e *Engine) Overlaps() int64 { return e.overlaps.Load() }

// LastLoaded returns the currently established identity.
func (e *Engine) LastLoaded() (refpropgo.FluidIdentity, bool) {
	if e.loaded == nil {
		return refpropgo.FluidIdentity{}, false
	}
	return e.loaded.id, true
}

func (e *Engine) enter() func() {
	e.calls.Add(1)
	if !e.inFlight.CompareAndSwap(0, 1) {
		e.overlaps.Add(1)
	}
	if e.callDelay > 0 {
		time.Sleep(e.callDelay)
	}
	return func() { e.inFlight.Store(0) }
}

// Setup implements refpropgo.Engine. On failure the previously loaded
// context stays in effect.
func (e *Engine) Setup(id refpropgo.FluidIdentity) error {
	defer e.enter()()

	var names []string
	var fracs []float64
	if id.IsMixture() {
		for _, c := range id.Components() {
			names = append(names, c.Name)
			fracs = append(fracs, c.Fraction)
		}
	} else {
		names = []string{id.Name()}
		fracs = []float64{1.0}
	}

	lf := &loadedFluid{id: id, fracs: fracs}
	for _, name := range names {
		if e.failSetup[name] {
			return fmt.Errorf("SETUP error 101: could not open fluid file for %s", name)
		}
		spec, ok := e.fluids[name]
		if !ok {
			return fmt.Errorf("SETUP error 102: fluid %s not found", name)
		}
		lf.specs = append(lf.specs, spec)
	}

	for i, spec := range lf.specs {
		z := fracs[i]
		lf.molarMass += z * spec.MolarMass
		lf.cp0 += z * spec.Cp0
		lf.liqDens += z * spec.LiquidDensity
		lf.tc += z * spec.CriticalTemp
		lf.pc += z * spec.CriticalPress
		lf.dc += z * spec.CriticalDens
		lf.ttrp += z * spec.TriplePoint
		lf.tb += z * spec.NormalBoiling
		lf.acf += z * spec.AcentricFactor
	}

	e.loaded = lf
	e.setups.Add(1)
	return nil
}

func (e *Engine) cur() (*loadedFluid, error) {
	if e.loaded == nil {
		return nil, errors.Computation(errors.PhaseSetup, 1, "no fluid loaded")
	}
	return e.loaded, nil
}

// MolarMass implements refpropgo.Engine.
func (e *Engine) MolarMass() (float64, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return 0, err
	}
	return lf.molarMass, nil
}

// ── Saturation model ─────────────────────────────────────────────────

// psat is the Clausius-Clapeyron curve anchored at the normal boiling
// point (101.325 kPa) and the critical point.
func psat(spec FluidSpec, t float64) float64 {
	lnPc := math.Log(spec.CriticalPress)
	lnPb := math.Log(101.325)
	slope := (lnPc - lnPb) / (spec.CriticalTemp/spec.NormalBoiling - 1)
	return math.Exp(lnPc - slope*(spec.CriticalTemp/t-1))
}

// branchPressure evaluates the Raoult-law saturation pressure on the
// requested branch. Pure fluids collapse both branches onto psat.
func (lf *loadedFluid) branchPressure(t float64, branch refpropgo.SaturationBranch) float64 {
	if len(lf.specs) == 1 {
		return psat(lf.specs[0], t)
	}
	if branch == refpropgo.BranchDew {
		inv := 0.0
		for i, spec := range lf.specs {
			inv += lf.fracs[i] / psat(spec, t)
		}
		return 1.0 / inv
	}
	p := 0.0
	for i, spec := range lf.specs {
		p += lf.fracs[i] * psat(spec, t)
	}
	return p
}

// SaturationT implements refpropgo.Engine.
func (e *Engine) SaturationT(t float64, branch refpropgo.SaturationBranch) (refpropgo.SaturationProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.SaturationProps{}, err
	}
	if t <= 0 || t >= lf.tc {
		return refpropgo.SaturationProps{}, errors.Computation(errors.PhaseSaturation, 141,
			fmt.Sprintf("SATT error: temperature %g K outside saturation range", t))
	}
	p := lf.branchPressure(t, branch)
	return refpropgo.SaturationProps{
		Temperature:   t,
		Pressure:      p,
		DensityLiquid: lf.liqDens,
		DensityVapor:  p / (gasConstant * t),
	}, nil
}

// SaturationP implements refpropgo.Engine. The branch curve is inverted
// numerically; it is strictly increasing in temperature.
func (e *Engine) SaturationP(p float64, branch refpropgo.SaturationBranch) (refpropgo.SaturationProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.SaturationProps{}, err
	}
	if p <= 0 || p >= lf.pc {
		return refpropgo.SaturationProps{}, errors.Computation(errors.PhaseSaturation, 141,
			fmt.Sprintf("SATP error: pressure %g kPa outside saturation range", p))
	}
	lo, hi := 1.0, lf.tc
	for i := 0; i < bisectIters; i++ {
		mid := 0.5 * (lo + hi)
		if lf.branchPressure(mid, branch) < p {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := 0.5 * (lo + hi)
	return refpropgo.SaturationProps{
		Temperature:   t,
		Pressure:      p,
		DensityLiquid: lf.liqDens,
		DensityVapor:  p / (gasConstant * t),
	}, nil
}

// ── Single-phase model ───────────────────────────────────────────────

// therm evaluates the model at (T, D). Densities at or above the critical
// density take the liquid branch.
func (lf *loadedFluid) therm(t, d float64) refpropgo.ThermoProps {
	p := d * gasConstant * t
	h := lf.cp0*t - enthalpySlope*d
	s := lf.cp0*math.Log(t) - gasConstant*math.Log(d)
	if d >= lf.dc {
		hvap := troutonRatio * gasConstant * lf.tb
		h -= hvap
		s -= hvap / lf.tb
	}
	cv := lf.cp0 - gasConstant
	w := math.Sqrt(1000.0 * (lf.cp0 / cv) * gasConstant * t / lf.molarMass)
	return refpropgo.ThermoProps{
		Temperature:    t,
		Pressure:       p,
		Density:        d,
		Enthalpy:       h,
		Entropy:        s,
		Cv:             cv,
		Cp:             lf.cp0,
		SoundSpeed:     w,
		Quality:        math.NaN(),
		InternalEnergy: h - p/d,
	}
}

// Quality sentinels reported for single-phase flash results, matching the
// native engine's convention of values far outside [0, 1].
const (
	qualitySubcooled   = -998.0
	qualitySuperheated = 998.0
)

func (lf *loadedFluid) sentinel(d float64) float64 {
	if d >= lf.dc {
		return qualitySubcooled
	}
	return qualitySuperheated
}

// Therm implements refpropgo.Engine.
func (e *Engine) Therm(t, d float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if t <= 0 || d <= 0 {
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 4,
			fmt.Sprintf("THERM error: non-physical state T=%g D=%g", t, d))
	}
	return lf.therm(t, d), nil
}

// ── Flash routines ───────────────────────────────────────────────────

// FlashTP implements refpropgo.Engine. Inside the two-phase dome a T-P
// flash is ill-posed and rejected, as the native engine does.
func (e *Engine) FlashTP(t, p float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if t <= 0 || p <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("TPFLSH", t, p)
	}

	var d, q float64
	switch {
	case t >= lf.tc:
		d = p / (gasConstant * t)
		q = qualitySuperheated
	case p >= lf.branchPressure(t, refpropgo.BranchBubble):
		d = lf.liqDens
		q = qualitySubcooled
	case p <= lf.branchPressure(t, refpropgo.BranchDew):
		d = p / (gasConstant * t)
		q = qualitySuperheated
	default:
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 248,
			"TPFLSH error: state is inside the two-phase dome")
	}

	props := lf.therm(t, d)
	props.Pressure = p
	props.Quality = q
	return props, nil
}

// FlashTD implements refpropgo.Engine.
func (e *Engine) FlashTD(t, d float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if t <= 0 || d <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("TDFLSH", t, d)
	}
	props := lf.therm(t, d)
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashPD implements refpropgo.Engine.
func (e *Engine) FlashPD(p, d float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if p <= 0 || d <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("PDFLSH", p, d)
	}
	t := p / (d * gasConstant)
	props := lf.therm(t, d)
	props.Pressure = p
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashPH implements refpropgo.Engine. Solved on the vapor branch where
// enthalpy is strictly increasing in temperature at fixed pressure.
func (e *Engine) FlashPH(p, h float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if p <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("PHFLSH", p, h)
	}
	t, err := bisect(50, 5000, func(t float64) float64 {
		return lf.therm(t, p/(gasConstant*t)).Enthalpy - h
	})
	if err != nil {
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 249,
			fmt.Sprintf("PHFLSH error: no solution for P=%g H=%g", p, h))
	}
	d := p / (gasConstant * t)
	props := lf.therm(t, d)
	props.Pressure = p
	props.Enthalpy = h
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashPS implements refpropgo.Engine.
func (e *Engine) FlashPS(p, s float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if p <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("PSFLSH", p, s)
	}
	t, err := bisect(50, 5000, func(t float64) float64 {
		return lf.therm(t, p/(gasConstant*t)).Entropy - s
	})
	if err != nil {
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 249,
			fmt.Sprintf("PSFLSH error: no solution for P=%g S=%g", p, s))
	}
	d := p / (gasConstant * t)
	props := lf.therm(t, d)
	props.Pressure = p
	props.Entropy = s
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashTH implements refpropgo.Engine. The model's vapor enthalpy falls
// with density at fixed temperature, so density is recovered directly.
func (e *Engine) FlashTH(t, h float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	d := (lf.cp0*t - h) / enthalpySlope
	if t <= 0 || d <= 0 || d >= lf.dc {
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 249,
			fmt.Sprintf("THFLSH error: no vapor solution for T=%g H=%g", t, h))
	}
	props := lf.therm(t, d)
	props.Enthalpy = h
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashTS implements refpropgo.Engine.
func (e *Engine) FlashTS(t, s float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if t <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("TSFLSH", t, s)
	}
	d := math.Exp((lf.cp0*math.Log(t) - s) / gasConstant)
	props := lf.therm(t, d)
	props.Entropy = s
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashDH implements refpropgo.Engine.
func (e *Engine) FlashDH(d, h float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if d <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("DHFLSH", d, h)
	}
	t := (h + enthalpySlope*d) / lf.cp0
	if t <= 0 {
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 249,
			fmt.Sprintf("DHFLSH error: no solution for D=%g H=%g", d, h))
	}
	props := lf.therm(t, d)
	props.Enthalpy = h
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashDS implements refpropgo.Engine.
func (e *Engine) FlashDS(d, s float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}
	if d <= 0 {
		return refpropgo.ThermoProps{}, flashDomainErr("DSFLSH", d, s)
	}
	t := math.Exp((s + gasConstant*math.Log(d)) / lf.cp0)
	props := lf.therm(t, d)
	props.Entropy = s
	props.Quality = lf.sentinel(d)
	return props, nil
}

// FlashHS implements refpropgo.Engine. Eliminating density via the
// enthalpy relation leaves a residual in T that dips to a single minimum;
// the vapor root sits on the low-temperature side.
func (e *Engine) FlashHS(h, s float64) (refpropgo.ThermoProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.ThermoProps{}, err
	}

	residual := func(t float64) float64 {
		d := (lf.cp0*t - h) / enthalpySlope
		if d <= 0 {
			return math.Inf(1)
		}
		return lf.cp0*math.Log(t) - gasConstant*math.Log(d) - s
	}
	tMin := h / (lf.cp0 - gasConstant)
	tLo := h/lf.cp0 + 1e-9
	if tMin <= tLo || !isFiniteVal(tMin) || residual(tMin) > 0 {
		return refpropgo.ThermoProps{}, errors.Computation(errors.PhaseFlash, 249,
			fmt.Sprintf("HSFLSH error: no solution for H=%g S=%g", h, s))
	}
	// residual falls from +inf at tLo to its minimum at tMin
	lo, hi := tLo, tMin
	for i := 0; i < bisectIters; i++ {
		mid := 0.5 * (lo + hi)
		if residual(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	t := 0.5 * (lo + hi)
	d := (lf.cp0*t - h) / enthalpySlope
	props := lf.therm(t, d)
	props.Enthalpy = h
	props.Entropy = s
	props.Quality = lf.sentinel(d)
	return props, nil
}

// ── Other routines ───────────────────────────────────────────────────

// Transport implements refpropgo.Engine with smooth positive correlations.
func (e *Engine) Transport(t, d float64) (refpropgo.TransportProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.TransportProps{}, err
	}
	if t <= 0 || d <= 0 {
		return refpropgo.TransportProps{}, errors.Computation(errors.PhaseTransport, 4,
			fmt.Sprintf("TRNPRP error: non-physical state T=%g D=%g", t, d))
	}
	return refpropgo.TransportProps{
		Viscosity:           0.027*math.Sqrt(lf.molarMass*t) + 0.4*d,
		ThermalConductivity: (0.005 + 0.0008*d) * math.Sqrt(t),
	}, nil
}

// CriticalPoint implements refpropgo.Engine.
func (e *Engine) CriticalPoint() (refpropgo.CriticalProps, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.CriticalProps{}, err
	}
	return refpropgo.CriticalProps{
		Temperature: lf.tc,
		Pressure:    lf.pc,
		Density:     lf.dc,
	}, nil
}

// Info implements refpropgo.Engine. For mixtures the constants are
// mole-fraction weighted.
func (e *Engine) Info() (refpropgo.FluidInfo, error) {
	defer e.enter()()
	lf, err := e.cur()
	if err != nil {
		return refpropgo.FluidInfo{}, err
	}
	return refpropgo.FluidInfo{
		MolarMass:             lf.molarMass,
		TriplePointTemp:       lf.ttrp,
		NormalBoilingPoint:    lf.tb,
		CriticalTemperature:   lf.tc,
		CriticalPressure:      lf.pc,
		CriticalDensity:       lf.dc,
		CompressibilityFactor: lf.pc / (lf.dc * gasConstant * lf.tc),
		AcentricFactor:        lf.acf,
		DipoleMoment:          0,
		GasConstant:           gasConstant,
	}, nil
}

// ── Helpers ──────────────────────────────────────────────────────────

func flashDomainErr(routine string, a, b float64) *errors.Error {
	return errors.Computation(errors.PhaseFlash, 4,
		fmt.Sprintf("%s error: non-physical inputs (%g, %g)", routine, a, b))
}

// bisect finds a root of f on [lo, hi], requiring a sign change.
func bisect(lo, hi float64, f func(float64) float64) (float64, error) {
	flo, fhi := f(lo), f(hi)
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if (flo > 0) == (fhi > 0) {
		return 0, fmt.Errorf("no sign change on [%g, %g]", lo, hi)
	}
	for i := 0; i < bisectIters; i++ {
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

func isFiniteVal(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
