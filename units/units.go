package units

// TempUnit is a temperature unit choice. The zero value is Kelvin,
// the engine-native unit.
type TempUnit int

const (
	Kelvin TempUnit = iota
	Celsius
	Fahrenheit
)

// PressUnit is a pressure unit choice. The zero value is KPa,
// the engine-native unit.
type PressUnit int

const (
	KPa PressUnit = iota
	Bar
	MPa
	Pa
	Atm
	Psi
)

// DensityUnit is a density unit choice. KgPerM3 requires the fluid's
// molar mass.
type DensityUnit int

const (
	MolPerL DensityUnit = iota
	KgPerM3
)

// EnergyUnit covers enthalpy and internal energy. The mass-based units
// require the fluid's molar mass.
type EnergyUnit int

const (
	JPerMol EnergyUnit = iota
	KJPerKg
	JPerKg
)

// EntropyUnit covers entropy and the heat capacities Cv/Cp. The mass-based
// units require the fluid's molar mass.
type EntropyUnit int

const (
	JPerMolK EntropyUnit = iota
	KJPerKgK
	JPerKgK
)

// ViscosityUnit is a dynamic viscosity unit choice.
type ViscosityUnit int

const (
	MicroPaS ViscosityUnit = iota
	MilliPaS
	PaS
)

// ConductivityUnit is a thermal conductivity unit choice.
type ConductivityUnit int

const (
	WPerMK ConductivityUnit = iota
	MilliWPerMK
)

func (u TempUnit) String() string {
	switch u {
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	default:
		return "K"
	}
}

func (u PressUnit) String() string {
	switch u {
	case Bar:
		return "bar"
	case MPa:
		return "MPa"
	case Pa:
		return "Pa"
	case Atm:
		return "atm"
	case Psi:
		return "psi"
	default:
		return "kPa"
	}
}

func (u DensityUnit) String() string {
	if u == KgPerM3 {
		return "kg/m³"
	}
	return "mol/L"
}

func (u EnergyUnit) String() string {
	switch u {
	case KJPerKg:
		return "kJ/kg"
	case JPerKg:
		return "J/kg"
	default:
		return "J/mol"
	}
}

func (u EntropyUnit) String() string {
	switch u {
	case KJPerKgK:
		return "kJ/(kg·K)"
	case JPerKgK:
		return "J/(kg·K)"
	default:
		return "J/(mol·K)"
	}
}

func (u ViscosityUnit) String() string {
	switch u {
	case MilliPaS:
		return "mPa·s"
	case PaS:
		return "Pa·s"
	default:
		return "µPa·s"
	}
}

func (u ConductivityUnit) String() string {
	if u == MilliWPerMK {
		return "mW/(m·K)"
	}
	return "W/(m·K)"
}

// UnitSystem names the caller's preferred unit for each physical quantity.
// Values are plain data and must be treated as immutable: build one at
// Fluid creation and share it freely across goroutines.
type UnitSystem struct {
	Temperature  TempUnit
	Pressure     PressUnit
	Density      DensityUnit
	Energy       EnergyUnit
	Entropy      EntropyUnit
	Viscosity    ViscosityUnit
	Conductivity ConductivityUnit
}

// Native is the engine-native unit system: K, kPa, mol/L, J/mol,
// J/(mol·K), µPa·s, W/(m·K).
func Native() UnitSystem {
	return UnitSystem{}
}

// Engineering is the HVAC-style preset: °C, bar, kg/m³, kJ/kg, kJ/(kg·K).
func Engineering() UnitSystem {
	return UnitSystem{
		Temperature: Celsius,
		Pressure:    Bar,
		Density:     KgPerM3,
		Energy:      KJPerKg,
		Entropy:     KJPerKgK,
	}
}

// SI is the strict SI preset: K, Pa, kg/m³, J/kg, J/(kg·K), Pa·s.
func SI() UnitSystem {
	return UnitSystem{
		Pressure:  Pa,
		Density:   KgPerM3,
		Energy:    JPerKg,
		Entropy:   JPerKgK,
		Viscosity: PaS,
	}
}

// Builder methods, each overriding exactly one category.

func (s UnitSystem) WithTemperature(u TempUnit) UnitSystem  { s.Temperature = u; return s }
func (s UnitSystem) WithPressure(u PressUnit) UnitSystem    { s.Pressure = u; return s }
func (s UnitSystem) WithDensity(u DensityUnit) UnitSystem   { s.Density = u; return s }
func (s UnitSystem) WithEnergy(u EnergyUnit) UnitSystem     { s.Energy = u; return s }
func (s UnitSystem) WithEntropy(u EntropyUnit) UnitSystem   { s.Entropy = u; return s }
func (s UnitSystem) WithViscosity(u ViscosityUnit) UnitSystem {
	s.Viscosity = u
	return s
}
func (s UnitSystem) WithConductivity(u ConductivityUnit) UnitSystem {
	s.Conductivity = u
	return s
}
