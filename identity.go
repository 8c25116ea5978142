package refpropgo

import (
	"fmt"
	"math"
	"strings"

	"github.com/thermoflow/refprop-go/errors"
)

// MaxComponents is the largest number of mixture components the engine
// accepts in a single composition.
const MaxComponents = 20

// fractionSumTol is the allowed deviation of a mixture's mole-fraction sum
// from 1. fractionEqTol is the per-component tolerance used by Equal.
const (
	fractionSumTol = 1e-6
	fractionEqTol  = 1e-9
)

// Component is one constituent of a mixture.
type Component struct {
	// Name of the pure fluid, upper-cased on construction.
	Name string
	// Fraction is the mole fraction, in (0, 1].
	Fraction float64
}

// FluidIdentity names either a single pure fluid or a mixture with an
// explicit composition. It is immutable after construction and compared by
// value; session.Session uses that comparison to decide whether the
// engine's loaded context must be re-established.
type FluidIdentity struct {
	name       string
	components []Component
}

// Pure creates the identity of a single named fluid (or a predefined
// mixture the engine resolves by name). The name is case-insensitive.
func Pure(name string) (FluidIdentity, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return FluidIdentity{}, errors.InvalidFluid("fluid name is empty")
	}
	return FluidIdentity{name: name}, nil
}

// Mixture creates the identity of a custom mixture. Component order is
// preserved (the engine's composition array is positional). Fractions must
// be positive and sum to 1 within a small tolerance; violations fail here,
// before any engine call.
func Mixture(components []Component) (FluidIdentity, error) {
	if len(components) == 0 || len(components) > MaxComponents {
		return FluidIdentity{}, errors.InvalidFluid(fmt.Sprintf(
			"number of components must be 1–%d, got %d", MaxComponents, len(components)))
	}

	sum := 0.0
	normalized := make([]Component, len(components))
	for i, c := range components {
		name := strings.ToUpper(strings.TrimSpace(c.Name))
		if name == "" {
			return FluidIdentity{}, errors.InvalidFluid(fmt.Sprintf("component %d has an empty name", i))
		}
		if c.Fraction <= 0 || !isFinite(c.Fraction) {
			return FluidIdentity{}, errors.InvalidFluid(fmt.Sprintf(
				"component %s has non-positive mole fraction %v", name, c.Fraction))
		}
		normalized[i] = Component{Name: name, Fraction: c.Fraction}
		sum += c.Fraction
	}
	if math.Abs(sum-1.0) > fractionSumTol {
		return FluidIdentity{}, errors.InvalidFluid(fmt.Sprintf(
			"mole fractions must sum to 1, got %v", sum))
	}
	return FluidIdentity{components: normalized}, nil
}

// IsMixture reports whether the identity is a custom composition.
func (id FluidIdentity) IsMixture() bool { return len(id.components) > 0 }

// IsZero reports whether the identity is the uninitialized zero value.
func (id FluidIdentity) IsZero() bool {
	return id.name == "" && len(id.components) == 0
}

// Name returns the pure-fluid name, or "" for a custom mixture.
func (id FluidIdentity) Name() string { return id.name }

// Components returns a copy of the mixture composition, nil for pure fluids.
func (id FluidIdentity) Components() []Component {
	if len(id.components) == 0 {
		return nil
	}
	out := make([]Component, len(id.components))
	copy(out, id.components)
	return out
}

// Equal reports value equality: pure fluids match by name, mixtures by
// component set with fractions equal within tolerance. Component order does
// not matter for equality.
func (id FluidIdentity) Equal(other FluidIdentity) bool {
	if id.IsMixture() != other.IsMixture() {
		return false
	}
	if !id.IsMixture() {
		return id.name == other.name
	}
	if len(id.components) != len(other.components) {
		return false
	}
	used := make([]bool, len(other.components))
outer:
	for _, c := range id.components {
		for j, o := range other.components {
			if used[j] || c.Name != o.Name {
				continue
			}
			if math.Abs(c.Fraction-o.Fraction) <= fractionEqTol {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// String renders a stable human-readable form, e.g. "CO2" or
// "R32:0.5|R125:0.5".
func (id FluidIdentity) String() string {
	if !id.IsMixture() {
		return id.name
	}
	parts := make([]string, len(id.components))
	for i, c := range id.components {
		parts[i] = fmt.Sprintf("%s:%g", c.Name, c.Fraction)
	}
	return strings.Join(parts, "|")
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
