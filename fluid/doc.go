// Package fluid is the public calculation API: a Fluid handle bound to one
// fluid or mixture identity, a configured unit system, and a shared
// session.
//
// # Property lookup
//
// States are specified by any two of T, P, D, H, S, Q, in either order;
// the dispatcher normalizes the pair and routes it to the matching engine
// flash routine. Twelve pairs are supported:
//
//	T-P  T-D  T-H  T-S  T-Q
//	P-D  P-H  P-S  P-Q
//	D-H  D-S  H-S
//
// Output properties are T, P, D, H, S, Q, CV, CP, W, E, ETA and TCX, with
// the conventional aliases (RHO, A, U, V/VIS, L/LAMBDA) accepted by
// GetByName.
//
// # Quality states
//
// T-Q and P-Q are not engine flashes. The saturation routine fixes the
// state's pressure (or temperature) and phase densities, and the
// single-phase endpoints are blended by quality. For zeotropic mixtures
// the two saturation branches disagree, so the quality picks one: below
// 50% the bubble curve, from 50% up the dew curve. Quality crosses this
// API as a mole percent (0-100) and is validated before any engine call.
//
// # Units
//
// Every input and output travels in the Fluid's configured unit system
// (see the units package); conversions happen at the boundary and the
// engine only ever sees native units. Info is the one exception: fluid
// constants are reported in native units regardless of configuration.
package fluid
