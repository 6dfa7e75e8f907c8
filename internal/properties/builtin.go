package properties

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
)

// builtinSpecies is the process-wide table of common substances.
// Antoine coefficients are in mmHg and °C.
var builtinSpecies = map[string]domain.Species{
	"water": {
		Name: "water", Formula: "H2O", SMILES: "O", MolecularWeight: 18.015,
		NormalBoilingPoint: 373.15, CriticalTemperature: 647.1, CriticalPressure: 220.64, AcentricFactor: 0.3443,
		Antoine: domain.Antoine{A: 8.07131, B: 1730.63, C: 233.426},
	},
	"ethanol": {
		Name: "ethanol", Formula: "C2H6O", SMILES: "CCO", MolecularWeight: 46.069,
		NormalBoilingPoint: 351.44, CriticalTemperature: 513.9, CriticalPressure: 61.48, AcentricFactor: 0.649,
		Antoine: domain.Antoine{A: 8.20417, B: 1642.89, C: 230.300},
	},
	"methanol": {
		Name: "methanol", Formula: "CH4O", SMILES: "CO", MolecularWeight: 32.042,
		NormalBoilingPoint: 337.85, CriticalTemperature: 512.6, CriticalPressure: 80.97, AcentricFactor: 0.565,
		Antoine: domain.Antoine{A: 8.08097, B: 1582.27, C: 239.726},
	},
	"acetonitrile": {
		Name: "acetonitrile", Formula: "C2H3N", SMILES: "CC#N", MolecularWeight: 41.053,
		NormalBoilingPoint: 354.75, CriticalTemperature: 545.5, CriticalPressure: 48.3, AcentricFactor: 0.338,
		Antoine: domain.Antoine{A: 7.33542, B: 1482.29, C: 250.523},
	},
	"tetrahydrofuran": {
		Name: "tetrahydrofuran", Formula: "C4H8O", SMILES: "C1CCOC1", MolecularWeight: 72.107,
		NormalBoilingPoint: 339.15, CriticalTemperature: 540.1, CriticalPressure: 51.9, AcentricFactor: 0.225,
		Antoine: domain.Antoine{A: 6.99515, B: 1202.29, C: 226.254},
	},
	"acetone": {
		Name: "acetone", Formula: "C3H6O", SMILES: "CC(=O)C", MolecularWeight: 58.08,
		NormalBoilingPoint: 329.2, CriticalTemperature: 508.1, CriticalPressure: 47.0, AcentricFactor: 0.307,
		Antoine: domain.Antoine{A: 7.11714, B: 1210.595, C: 229.664},
	},
	"benzene": {
		Name: "benzene", Formula: "C6H6", SMILES: "c1ccccc1", MolecularWeight: 78.114,
		NormalBoilingPoint: 353.2, CriticalTemperature: 562.0, CriticalPressure: 48.9, AcentricFactor: 0.212,
		Antoine: domain.Antoine{A: 6.90565, B: 1211.033, C: 220.790},
	},
	"toluene": {
		Name: "toluene", Formula: "C7H8", SMILES: "Cc1ccccc1", MolecularWeight: 92.141,
		NormalBoilingPoint: 383.8, CriticalTemperature: 591.8, CriticalPressure: 41.06, AcentricFactor: 0.263,
		Antoine: domain.Antoine{A: 6.95464, B: 1344.8, C: 219.482},
	},
	"sodium sulfate": {
		Name: "sodium sulfate", Formula: "Na2SO4", SMILES: "[Na+].[Na+].[O-]S(=O)(=O)[O-]", MolecularWeight: 142.04,
		NormalBoilingPoint: 1702, NonVolatile: true,
	},
	"sodium chloride": {
		Name: "sodium chloride", Formula: "NaCl", SMILES: "[Na+].[Cl-]", MolecularWeight: 58.44,
		NormalBoilingPoint: 1686, NonVolatile: true,
	},
}

// Builtin serves the table of common substances by exact canonical key.
type Builtin struct{}

// NewBuiltin creates the built-in provider.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

func (b *Builtin) Name() string          { return "builtin" }
func (b *Builtin) Source() domain.Source { return domain.SourceBuiltin }

// Provide returns a copy of the table entry for q.Identifier.
func (b *Builtin) Provide(_ context.Context, q *ports.Query) (*domain.Species, error) {
	entry, ok := builtinSpecies[q.Identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a built-in substance", domain.ErrNoData, q.Identifier)
	}
	s := entry
	s.ID = q.Identifier
	s.Source = domain.SourceBuiltin
	return &s, nil
}

// BuiltinKeys lists the canonical keys of the built-in table, sorted.
func BuiltinKeys() []string {
	keys := make([]string, 0, len(builtinSpecies))
	for k := range builtinSpecies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
