// Package units provides configurable unit conversion between a caller's
// preferred units and the engine's fixed native units.
//
// The engine internally uses K, kPa, mol/L, J/mol, J/(mol·K), µPa·s,
// W/(m·K) and m/s. A UnitSystem names one unit per physical quantity and
// a Converter (UnitSystem plus the fluid's molar mass) performs the
// conversions transparently.
//
// # Presets
//
//	Preset         T   P    D      H       S
//	─────────────────────────────────────────────────
//	Native()       K   kPa  mol/L  J/mol   J/(mol·K)
//	Engineering()  °C  bar  kg/m³  kJ/kg   kJ/(kg·K)
//	SI()           K   Pa   kg/m³  J/kg    J/(kg·K)
//
// # Builder
//
// Builder methods start from any preset and override one category at a
// time, returning modified copies:
//
//	us := units.Native().
//	    WithTemperature(units.Celsius).
//	    WithPressure(units.Bar)
//
// The zero UnitSystem value is the native preset.
//
// Everything in this package is pure and stateless: UnitSystem values are
// immutable, Converter methods never mutate, and no synchronization is
// needed from any goroutine.
package units
