package fluid

import "strings"

// Key identifies a thermodynamic or transport property. Input state pairs
// are built from T, P, D, H, S and Q; every Key is valid as an output.
type Key int

const (
	KeyT Key = iota // temperature
	KeyP            // pressure
	KeyD            // molar density
	KeyH            // enthalpy
	KeyS            // entropy
	KeyQ            // vapor quality
	KeyCv           // isochoric heat capacity
	KeyCp           // isobaric heat capacity
	KeyW            // speed of sound
	KeyE            // internal energy
	KeyEta          // dynamic viscosity
	KeyTcx          // thermal conductivity
)

var keyNames = [...]string{
	KeyT: "T", KeyP: "P", KeyD: "D", KeyH: "H", KeyS: "S", KeyQ: "Q",
	KeyCv: "CV", KeyCp: "CP", KeyW: "W", KeyE: "E", KeyEta: "ETA", KeyTcx: "TCX",
}

// String returns the canonical key name.
func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "?"
	}
	return keyNames[k]
}

// keyAliases maps every accepted spelling, upper-cased, to its Key. The
// alias set matches the conventional property-code vocabulary: RHO for
// density, A for speed of sound, U for internal energy, V/VIS for
// viscosity, L/LAMBDA for conductivity.
var keyAliases = map[string]Key{
	"T": KeyT,
	"P": KeyP,
	"D": KeyD, "RHO": KeyD,
	"H": KeyH,
	"S": KeyS,
	"Q": KeyQ,
	"CV": KeyCv,
	"CP": KeyCp,
	"W": KeyW, "A": KeyW,
	"E": KeyE, "U": KeyE,
	"ETA": KeyEta, "V": KeyEta, "VIS": KeyEta,
	"TCX": KeyTcx, "L": KeyTcx, "LAMBDA": KeyTcx,
}

// parseKey resolves a property name or alias, case-insensitively.
func parseKey(s string) (Key, bool) {
	k, ok := keyAliases[strings.ToUpper(strings.TrimSpace(s))]
	return k, ok
}

// isInput reports whether k may appear in an input state pair.
func isInput(k Key) bool { return k >= KeyT && k <= KeyQ }

// isValid reports whether k is one of the defined property keys.
func isValid(k Key) bool { return k >= KeyT && k <= KeyTcx }
