package enginetest

// FluidSpec holds the per-fluid constants the model needs. Units are
// engine-native: K, kPa, mol/L, J/(mol·K).
type FluidSpec struct {
	MolarMass      float64 // g/mol
	CriticalTemp   float64 // K
	CriticalPress  float64 // kPa
	CriticalDens   float64 // mol/L
	TriplePoint    float64 // K
	NormalBoiling  float64 // K
	AcentricFactor float64
	LiquidDensity  float64 // mol/L, treated as incompressible
	Cp0            float64 // J/(mol·K), ideal-gas heat capacity
}

// builtinFluids are the fluids a fresh Engine knows about. Constants are
// rounded literature values; the model only needs them to be plausible and
// mutually distinct.
var builtinFluids = map[string]FluidSpec{
	"CO2": {
		MolarMass: 44.0098, CriticalTemp: 304.13, CriticalPress: 7377.3,
		CriticalDens: 10.625, TriplePoint: 216.59, NormalBoiling: 194.69,
		AcentricFactor: 0.224, LiquidDensity: 26.0, Cp0: 37.1,
	},
	"R134A": {
		MolarMass: 102.032, CriticalTemp: 374.21, CriticalPress: 4059.3,
		CriticalDens: 5.017, TriplePoint: 169.85, NormalBoiling: 247.08,
		AcentricFactor: 0.327, LiquidDensity: 13.0, Cp0: 85.0,
	},
	"R32": {
		MolarMass: 52.024, CriticalTemp: 351.26, CriticalPress: 5782.0,
		CriticalDens: 8.15, TriplePoint: 136.34, NormalBoiling: 221.50,
		AcentricFactor: 0.277, LiquidDensity: 23.0, Cp0: 43.0,
	},
	"R125": {
		MolarMass: 120.021, CriticalTemp: 339.17, CriticalPress: 3617.7,
		CriticalDens: 4.779, TriplePoint: 172.52, NormalBoiling: 225.06,
		AcentricFactor: 0.305, LiquidDensity: 12.0, Cp0: 100.0,
	},
	"R1234YF": {
		MolarMass: 114.042, CriticalTemp: 367.85, CriticalPress: 3382.2,
		CriticalDens: 4.17, TriplePoint: 220.0, NormalBoiling: 243.66,
		AcentricFactor: 0.276, LiquidDensity: 10.0, Cp0: 103.0,
	},
	"PROPANE": {
		MolarMass: 44.0956, CriticalTemp: 369.89, CriticalPress: 4251.2,
		CriticalDens: 5.0, TriplePoint: 85.53, NormalBoiling: 231.04,
		AcentricFactor: 0.152, LiquidDensity: 13.2, Cp0: 73.6,
	},
	"BUTANE": {
		MolarMass: 58.1222, CriticalTemp: 425.13, CriticalPress: 3796.0,
		CriticalDens: 3.92, TriplePoint: 134.90, NormalBoiling: 272.66,
		AcentricFactor: 0.201, LiquidDensity: 10.0, Cp0: 98.5,
	},
	"WATER": {
		MolarMass: 18.0153, CriticalTemp: 647.10, CriticalPress: 22064.0,
		CriticalDens: 17.87, TriplePoint: 273.16, NormalBoiling: 373.12,
		AcentricFactor: 0.344, LiquidDensity: 55.5, Cp0: 33.6,
	},
}
