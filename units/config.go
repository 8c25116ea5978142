package units

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thermoflow/refprop-go/errors"
)

// Config is the YAML shape of a unit system. Omitted categories keep the
// engine-native default, mirroring the builder.
//
//	temperature: C
//	pressure: bar
//	density: kg/m3
//	energy: kJ/kg
//	entropy: kJ/(kg.K)
type Config struct {
	Temperature  string `yaml:"temperature"`
	Pressure     string `yaml:"pressure"`
	Density      string `yaml:"density"`
	Energy       string `yaml:"energy"`
	Entropy      string `yaml:"entropy"`
	Viscosity    string `yaml:"viscosity"`
	Conductivity string `yaml:"conductivity"`
}

// ParseSystem decodes a YAML unit-system document. Unknown unit names fail
// with an invalid-input error naming the category.
func ParseSystem(data []byte) (UnitSystem, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return UnitSystem{}, errors.Wrap(errors.PhaseConvert, errors.KindInvalidInput,
			err, "decode unit system config")
	}
	return cfg.System()
}

// System resolves the config into a UnitSystem.
func (cfg Config) System() (UnitSystem, error) {
	s := Native()
	var err error
	if cfg.Temperature != "" {
		if s.Temperature, err = parseTemp(cfg.Temperature); err != nil {
			return UnitSystem{}, err
		}
	}
	if cfg.Pressure != "" {
		if s.Pressure, err = parsePress(cfg.Pressure); err != nil {
			return UnitSystem{}, err
		}
	}
	if cfg.Density != "" {
		if s.Density, err = parseDensity(cfg.Density); err != nil {
			return UnitSystem{}, err
		}
	}
	if cfg.Energy != "" {
		if s.Energy, err = parseEnergy(cfg.Energy); err != nil {
			return UnitSystem{}, err
		}
	}
	if cfg.Entropy != "" {
		if s.Entropy, err = parseEntropy(cfg.Entropy); err != nil {
			return UnitSystem{}, err
		}
	}
	if cfg.Viscosity != "" {
		if s.Viscosity, err = parseViscosity(cfg.Viscosity); err != nil {
			return UnitSystem{}, err
		}
	}
	if cfg.Conductivity != "" {
		if s.Conductivity, err = parseConductivity(cfg.Conductivity); err != nil {
			return UnitSystem{}, err
		}
	}
	return s, nil
}

// normalize lower-cases a unit name and folds the typographic characters
// the String() forms use, so config files may write either "kJ/(kg·K)" or
// "kj/(kg.k)".
func normalize(name string) string {
	r := strings.NewReplacer("·", ".", "³", "3", "µ", "u", "°", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(name)))
}

func parseTemp(name string) (TempUnit, error) {
	switch normalize(name) {
	case "k", "kelvin":
		return Kelvin, nil
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	}
	return 0, badUnit("temperature", name)
}

func parsePress(name string) (PressUnit, error) {
	switch normalize(name) {
	case "kpa":
		return KPa, nil
	case "bar":
		return Bar, nil
	case "mpa":
		return MPa, nil
	case "pa":
		return Pa, nil
	case "atm":
		return Atm, nil
	case "psi":
		return Psi, nil
	}
	return 0, badUnit("pressure", name)
}

func parseDensity(name string) (DensityUnit, error) {
	switch normalize(name) {
	case "mol/l":
		return MolPerL, nil
	case "kg/m3":
		return KgPerM3, nil
	}
	return 0, badUnit("density", name)
}

func parseEnergy(name string) (EnergyUnit, error) {
	switch normalize(name) {
	case "j/mol":
		return JPerMol, nil
	case "kj/kg":
		return KJPerKg, nil
	case "j/kg":
		return JPerKg, nil
	}
	return 0, badUnit("energy", name)
}

func parseEntropy(name string) (EntropyUnit, error) {
	switch normalize(name) {
	case "j/(mol.k)":
		return JPerMolK, nil
	case "kj/(kg.k)":
		return KJPerKgK, nil
	case "j/(kg.k)":
		return JPerKgK, nil
	}
	return 0, badUnit("entropy", name)
}

func parseViscosity(name string) (ViscosityUnit, error) {
	switch normalize(name) {
	case "upa.s":
		return MicroPaS, nil
	case "mpa.s":
		return MilliPaS, nil
	case "pa.s":
		return PaS, nil
	}
	return 0, badUnit("viscosity", name)
}

func parseConductivity(name string) (ConductivityUnit, error) {
	switch normalize(name) {
	case "w/(m.k)":
		return WPerMK, nil
	case "mw/(m.k)":
		return MilliWPerMK, nil
	}
	return 0, badUnit("conductivity", name)
}

func badUnit(category, name string) *errors.Error {
	return errors.InvalidInput(errors.PhaseConvert,
		"unknown %s unit %q", category, name)
}
