package properties

import (
	"strings"
	"unicode"
)

// structures maps SMILES strings and formulas onto canonical species keys.
// Case carries meaning here (Co is cobalt, c is an aromatic carbon), so keys
// are matched exactly after trimming.
var structures = map[string]string{
	"H2O": "water", "O": "water",
	"C2H5OH": "ethanol", "C2H6O": "ethanol", "CCO": "ethanol", "OCC": "ethanol",
	// CO is read as methanol's SMILES; the formula reading (carbon monoxide) is not supported.
	"CH3OH": "methanol", "CH4O": "methanol", "CO": "methanol", "OC": "methanol",
	"CH3CN": "acetonitrile", "C2H3N": "acetonitrile", "CC#N": "acetonitrile", "N#CC": "acetonitrile",
	"C4H8O": "tetrahydrofuran", "C1CCOC1": "tetrahydrofuran",
	"C3H6O": "acetone", "CC(=O)C": "acetone", "CC(C)=O": "acetone",
	"C6H6": "benzene", "c1ccccc1": "benzene", "C1=CC=CC=C1": "benzene",
	"C7H8": "toluene", "Cc1ccccc1": "toluene",
	"Na2SO4": "sodium sulfate", "[Na+].[Na+].[O-]S(=O)(=O)[O-]": "sodium sulfate",
	"NaCl": "sodium chloride", "[Na+].[Cl-]": "sodium chloride",
}

// aliases maps folded free-text names onto canonical species keys.
// Keys are compared after Fold, so entries must already be folded. Lower-case
// formulas are listed only where no element symbol or SMILES reads the same.
var aliases = map[string]string{
	// water
	"water": "water", "h2o": "water", "水": "water", "dihydrogen oxide": "water",
	// ethanol
	"ethanol": "ethanol", "etoh": "ethanol", "ethyl alcohol": "ethanol", "c2h5oh": "ethanol",
	"乙醇": "ethanol", "酒精": "ethanol",
	// methanol
	"methanol": "methanol", "meoh": "methanol", "methyl alcohol": "methanol", "ch3oh": "methanol",
	"甲醇": "methanol",
	// acetonitrile
	"acetonitrile": "acetonitrile", "mecn": "acetonitrile", "acn": "acetonitrile",
	"ch3cn": "acetonitrile", "乙腈": "acetonitrile",
	// tetrahydrofuran
	"tetrahydrofuran": "tetrahydrofuran", "thf": "tetrahydrofuran", "oxolane": "tetrahydrofuran",
	"四氢呋喃": "tetrahydrofuran",
	// acetone
	"acetone": "acetone", "propanone": "acetone", "2-propanone": "acetone", "dimethyl ketone": "acetone",
	"丙酮": "acetone",
	// benzene
	"benzene": "benzene", "苯": "benzene",
	// toluene
	"toluene": "toluene", "methylbenzene": "toluene", "甲苯": "toluene",
	// salts
	"sodium sulfate": "sodium sulfate", "na2so4": "sodium sulfate", "硫酸钠": "sodium sulfate",
	"sodium chloride": "sodium chloride", "nacl": "sodium chloride", "salt": "sodium chloride",
	"氯化钠": "sodium chloride",
}

// Fold trims, lower-cases and collapses inner whitespace.
func Fold(identifier string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(identifier), unicode.IsSpace), " ")
}

// Normalize maps identifier onto its canonical key. Structures are matched
// case-sensitively before names are folded. Unknown identifiers are returned
// folded and reported with ok=false.
func Normalize(identifier string) (string, bool) {
	if key, ok := structures[strings.TrimSpace(identifier)]; ok {
		return key, true
	}
	folded := Fold(identifier)
	if key, ok := aliases[folded]; ok {
		return key, true
	}
	return folded, false
}
