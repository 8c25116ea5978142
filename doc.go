// Package refpropgo provides a thread-safe orchestration layer for a
// stateful, non-reentrant native thermodynamic engine.
//
// The engine (NIST REFPROP or any implementation of the Engine interface)
// exposes position-dependent, unit-fixed subroutines that mutate
// process-wide state: the currently loaded fluid or mixture. Calling it
// from multiple goroutines without external serialization corrupts that
// state. This library makes the engine safe and ergonomic to use without
// reimplementing any thermodynamic model.
//
// # Architecture Overview
//
// The library is organized into focused packages:
//
//	refprop-go/          Root package with the Engine contract and native-unit records
//	├── session/         Serialized engine access and loaded-fluid tracking
//	├── fluid/           High-level Fluid facade and property-lookup dispatch
//	├── units/           Unit systems and conversions to/from engine-native units
//	├── errors/          Structured error types
//	└── enginetest/      Deterministic in-memory engine for testing
//
// # Quick Start
//
//	sess := session.New(eng)
//
//	co2, err := fluid.New(sess, "CO2", fluid.WithUnits(units.Engineering()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Inputs and outputs are in °C, bar, kg/m³, kJ/kg, ...
//	d, err := co2.GetByName("D", "T", 25.0, "P", 50.0)
//
// # Native Units
//
// The engine always computes in its fixed native units: K, kPa, mol/L,
// J/mol, J/(mol·K), µPa·s, W/(m·K) and m/s. All types in this root package
// carry values in those units. The fluid package converts to and from the
// caller's configured unit system at the API boundary; nothing below it
// ever sees non-native values.
//
// # Thread Safety
//
// A session.Session owns its Engine exclusively and serializes every call.
// Fluid values are safe for concurrent use; concurrent calls block on the
// session, they never interleave inside the engine. FluidIdentity and
// units.UnitSystem are immutable after construction.
//
// # Scope
//
// This layer does not load dynamic libraries, parse fluid definition
// files, or discover the engine installation. Those concerns belong to the
// Engine implementation behind the interface defined here.
package refpropgo
