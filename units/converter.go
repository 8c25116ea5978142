package units

import (
	"github.com/thermoflow/refprop-go/errors"
)

// Conversion constants relative to engine-native units.
const (
	kelvinOffset = 273.15
	kPaPerBar    = 100.0
	kPaPerMPa    = 1000.0
	kPaPerAtm    = 101.325
	kPaPerPsi    = 6.894757
)

// Quantity identifies which conversion a generic, key-driven caller needs.
type Quantity int

const (
	Dimensionless Quantity = iota
	Temperature
	Pressure
	Density
	Energy
	Entropy
	Viscosity
	Conductivity
)

// Converter performs conversions between user units and engine-native
// units. It combines a UnitSystem with the fluid's molar mass, needed for
// the mol ↔ kg based categories. Converters are pure values: every method
// is side-effect free and safe for concurrent use.
type Converter struct {
	Units UnitSystem
	// MolarMass in g/mol, mixture-averaged for mixtures.
	MolarMass float64
}

// NewConverter pairs a unit system with a molar mass.
func NewConverter(units UnitSystem, molarMass float64) Converter {
	return Converter{Units: units, MolarMass: molarMass}
}

// Identity is the no-op converter: native units with molar mass 1 so the
// mass-based formulas still hold formally.
func Identity() Converter {
	return Converter{Units: Native(), MolarMass: 1}
}

// TToNative converts a user temperature to K.
func (c Converter) TToNative(t float64) float64 {
	switch c.Units.Temperature {
	case Celsius:
		return t + kelvinOffset
	case Fahrenheit:
		return (t-32.0)*5.0/9.0 + kelvinOffset
	default:
		return t
	}
}

// TFromNative converts K to the user temperature unit.
func (c Converter) TFromNative(t float64) float64 {
	switch c.Units.Temperature {
	case Celsius:
		return t - kelvinOffset
	case Fahrenheit:
		return (t-kelvinOffset)*9.0/5.0 + 32.0
	default:
		return t
	}
}

// PToNative converts a user pressure to kPa.
func (c Converter) PToNative(p float64) float64 {
	switch c.Units.Pressure {
	case Bar:
		return p * kPaPerBar
	case MPa:
		return p * kPaPerMPa
	case Pa:
		return p / 1000.0
	case Atm:
		return p * kPaPerAtm
	case Psi:
		return p * kPaPerPsi
	default:
		return p
	}
}

// PFromNative converts kPa to the user pressure unit.
func (c Converter) PFromNative(p float64) float64 {
	switch c.Units.Pressure {
	case Bar:
		return p / kPaPerBar
	case MPa:
		return p / kPaPerMPa
	case Pa:
		return p * 1000.0
	case Atm:
		return p / kPaPerAtm
	case Psi:
		return p / kPaPerPsi
	default:
		return p
	}
}

// DToNative converts a user density to mol/L.
func (c Converter) DToNative(d float64) float64 {
	if c.Units.Density == KgPerM3 {
		return d / c.MolarMass
	}
	return d
}

// DFromNative converts mol/L to the user density unit.
func (c Converter) DFromNative(d float64) float64 {
	if c.Units.Density == KgPerM3 {
		return d * c.MolarMass
	}
	return d
}

// HToNative converts a user energy (enthalpy, internal energy) to J/mol.
func (c Converter) HToNative(h float64) float64 {
	switch c.Units.Energy {
	case KJPerKg:
		return h * c.MolarMass
	case JPerKg:
		return h * c.MolarMass / 1000.0
	default:
		return h
	}
}

// HFromNative converts J/mol to the user energy unit.
func (c Converter) HFromNative(h float64) float64 {
	switch c.Units.Energy {
	case KJPerKg:
		return h / c.MolarMass
	case JPerKg:
		return h * 1000.0 / c.MolarMass
	default:
		return h
	}
}

// SToNative converts a user entropy or heat capacity to J/(mol·K).
func (c Converter) SToNative(s float64) float64 {
	switch c.Units.Entropy {
	case KJPerKgK:
		return s * c.MolarMass
	case JPerKgK:
		return s * c.MolarMass / 1000.0
	default:
		return s
	}
}

// SFromNative converts J/(mol·K) to the user entropy unit.
func (c Converter) SFromNative(s float64) float64 {
	switch c.Units.Entropy {
	case KJPerKgK:
		return s / c.MolarMass
	case JPerKgK:
		return s * 1000.0 / c.MolarMass
	default:
		return s
	}
}

// EtaToNative converts a user viscosity to µPa·s.
func (c Converter) EtaToNative(eta float64) float64 {
	switch c.Units.Viscosity {
	case MilliPaS:
		return eta * 1000.0
	case PaS:
		return eta * 1e6
	default:
		return eta
	}
}

// EtaFromNative converts µPa·s to the user viscosity unit.
func (c Converter) EtaFromNative(eta float64) float64 {
	switch c.Units.Viscosity {
	case MilliPaS:
		return eta / 1000.0
	case PaS:
		return eta / 1e6
	default:
		return eta
	}
}

// TcxToNative converts a user conductivity to W/(m·K).
func (c Converter) TcxToNative(tcx float64) float64 {
	if c.Units.Conductivity == MilliWPerMK {
		return tcx / 1000.0
	}
	return tcx
}

// TcxFromNative converts W/(m·K) to the user conductivity unit.
func (c Converter) TcxFromNative(tcx float64) float64 {
	if c.Units.Conductivity == MilliWPerMK {
		return tcx * 1000.0
	}
	return tcx
}

// ToNative converts a user value to native units by quantity.
// Dimensionless values pass through unchanged.
func (c Converter) ToNative(q Quantity, v float64) float64 {
	switch q {
	case Temperature:
		return c.TToNative(v)
	case Pressure:
		return c.PToNative(v)
	case Density:
		return c.DToNative(v)
	case Energy:
		return c.HToNative(v)
	case Entropy:
		return c.SToNative(v)
	case Viscosity:
		return c.EtaToNative(v)
	case Conductivity:
		return c.TcxToNative(v)
	default:
		return v
	}
}

// FromNative converts a native value to user units by quantity.
func (c Converter) FromNative(q Quantity, v float64) float64 {
	switch q {
	case Temperature:
		return c.TFromNative(v)
	case Pressure:
		return c.PFromNative(v)
	case Density:
		return c.DFromNative(v)
	case Energy:
		return c.HFromNative(v)
	case Entropy:
		return c.SFromNative(v)
	case Viscosity:
		return c.EtaFromNative(v)
	case Conductivity:
		return c.TcxFromNative(v)
	default:
		return v
	}
}

// qualityClampTol bounds how far outside [0, 1] a fraction may sit and
// still be treated as floating-point noise around a saturation endpoint.
const qualityClampTol = 1e-9

// QToFraction converts a vapor quality in percent to the molar fraction the
// engine expects. Values outside [0, 100] are rejected.
func QToFraction(percent float64) (float64, error) {
	if !(percent >= 0 && percent <= 100) {
		return 0, errors.InvalidInput(errors.PhaseConvert,
			"quality must be in [0, 100] percent, got %v", percent)
	}
	return percent / 100.0, nil
}

// QFromFraction converts an engine vapor fraction to percent.
//
// Clamp policy: fractions within qualityClampTol outside [0, 1] are clamped
// to the boundary before scaling, absorbing round-off at the saturation
// endpoints. Values further outside — the engine's single-phase sentinels
// such as 998, 999 or negative subcooled markers — are scaled through
// unchanged so callers can still detect single-phase states.
func QFromFraction(frac float64) float64 {
	if frac < 0 && frac >= -qualityClampTol {
		frac = 0
	} else if frac > 1 && frac <= 1+qualityClampTol {
		frac = 1
	}
	return frac * 100.0
}
