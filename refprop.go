package refpropgo

// SaturationBranch selects which side of the phase envelope a saturation
// routine resolves. For zeotropic mixtures the bubble and dew curves differ
// at a given temperature or pressure; for pure fluids they coincide and the
// branch has no effect.
type SaturationBranch int

const (
	// BranchBubble resolves the bubble point (first vapor forming, quality 0).
	BranchBubble SaturationBranch = iota + 1
	// BranchDew resolves the dew point (last liquid vanishing, quality 1).
	BranchDew
)

// String returns the branch name.
func (b SaturationBranch) String() string {
	switch b {
	case BranchBubble:
		return "bubble"
	case BranchDew:
		return "dew"
	default:
		return "unknown"
	}
}

// ThermoProps is the full thermodynamic state returned by a flash routine,
// in native engine units (molar basis):
//
//	Temperature     K
//	Pressure        kPa
//	Density         mol/L
//	Enthalpy        J/mol
//	Entropy         J/(mol·K)
//	Cv, Cp          J/(mol·K)
//	SoundSpeed      m/s
//	Quality         molar vapor fraction 0–1 (<0 or >1 means single phase)
//	InternalEnergy  J/mol
type ThermoProps struct {
	Temperature    float64
	Pressure       float64
	Density        float64
	Enthalpy       float64
	Entropy        float64
	Cv             float64
	Cp             float64
	SoundSpeed     float64
	Quality        float64
	InternalEnergy float64
}

// SaturationProps describes a point on the saturation line in native units.
type SaturationProps struct {
	// Temperature is the saturation temperature (K).
	Temperature float64
	// Pressure is the saturation pressure (kPa).
	Pressure float64
	// DensityLiquid is the saturated-liquid density (mol/L).
	DensityLiquid float64
	// DensityVapor is the saturated-vapor density (mol/L).
	DensityVapor float64
}

// TransportProps holds transport properties at a state point, native units.
type TransportProps struct {
	// Viscosity is the dynamic viscosity (µPa·s).
	Viscosity float64
	// ThermalConductivity is in W/(m·K).
	ThermalConductivity float64
}

// CriticalProps is the critical point in native units.
type CriticalProps struct {
	Temperature float64 // K
	Pressure    float64 // kPa
	Density     float64 // mol/L
}

// FluidInfo carries intrinsic fluid constants. Values are always in native
// units regardless of any configured unit system, because they describe the
// fluid itself rather than a state point.
type FluidInfo struct {
	MolarMass             float64 // g/mol
	TriplePointTemp       float64 // K
	NormalBoilingPoint    float64 // K
	CriticalTemperature   float64 // K
	CriticalPressure      float64 // kPa
	CriticalDensity       float64 // mol/L
	CompressibilityFactor float64
	AcentricFactor        float64
	DipoleMoment          float64 // debye
	GasConstant           float64 // J/(mol·K)
}

// Engine is the contract this layer depends on from the underlying
// calculation engine. Implementations wrap the native library (or, for
// testing, a self-contained model).
//
// Engines are stateful and NOT safe for concurrent use: Setup mutates the
// process-wide "currently loaded fluid" context that every other routine
// reads. Callers must never invoke an Engine directly; all access goes
// through session.Session, which serializes calls and re-establishes the
// correct context before each one.
//
// All inputs and outputs are in native units. Flash routines take their two
// state variables in the fixed order their name states.
//
// T–Q and P–Q flashes are intentionally absent: quality-based states are
// composed by the fluid package from the branch-selected saturation routine
// plus Therm, because recomputing the exact quality endpoints via a generic
// flash is numerically unreliable for zeotropic mixtures.
type Engine interface {
	// Setup establishes the given fluid or mixture as the engine's current
	// context. On failure the previous context remains in effect.
	Setup(id FluidIdentity) error

	// MolarMass returns the mixture-averaged molar mass (g/mol) of the
	// currently loaded fluid.
	MolarMass() (float64, error)

	FlashTP(t, p float64) (ThermoProps, error)
	FlashPH(p, h float64) (ThermoProps, error)
	FlashPS(p, s float64) (ThermoProps, error)
	FlashTD(t, d float64) (ThermoProps, error)
	FlashPD(p, d float64) (ThermoProps, error)
	FlashTH(t, h float64) (ThermoProps, error)
	FlashTS(t, s float64) (ThermoProps, error)
	FlashDH(d, h float64) (ThermoProps, error)
	FlashDS(d, s float64) (ThermoProps, error)
	FlashHS(h, s float64) (ThermoProps, error)

	// SaturationT resolves the saturation state at temperature t on the
	// requested branch. SaturationP does the same at pressure p.
	SaturationT(t float64, branch SaturationBranch) (SaturationProps, error)
	SaturationP(p float64, branch SaturationBranch) (SaturationProps, error)

	// Therm evaluates all thermodynamic properties at a single-phase
	// (T, D) point. The Quality field of the result is NaN.
	Therm(t, d float64) (ThermoProps, error)

	Transport(t, d float64) (TransportProps, error)
	CriticalPoint() (CriticalProps, error)
	Info() (FluidInfo, error)
}
