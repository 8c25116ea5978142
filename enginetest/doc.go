// Package enginetest provides a deterministic, self-contained
// implementation of the refpropgo.Engine contract for tests.
//
// The model is intentionally simple but physically shaped: an ideal-gas
// vapor phase (P = D·R·T with D in mol/L and P in kPa), an incompressible
// liquid, Clausius-Clapeyron saturation curves anchored at each fluid's
// normal boiling point, and Raoult's law for mixtures. Raoult's law gives
// zeotropic blends a genuine bubble/dew pressure split
//
//	P_bubble(T) = Σ zᵢ·Pᵢsat(T)    P_dew(T) = (Σ zᵢ/Pᵢsat(T))⁻¹
//
// while pure fluids get identical branches, which is exactly the behavior
// the dispatcher's branch selection is tested against.
//
// Like the real engine, the fake is stateful and non-reentrant: Setup
// mutates the loaded-fluid context and every routine reads it. The fake
// additionally instruments that contract: it counts Setup calls, remembers
// the last loaded identity, and records any call that observes another call
// in flight, so serialization bugs surface as a nonzero Overlaps count
// instead of silent corruption.
package enginetest
