package interaction

import "github.com/aretw0/vapor/pkg/domain"

// calPerMol converts literature energies tabulated in cal/mol.
const calPerMol = 4.184

// builtinPairs is the process-wide parameter table. Energies are in J/mol.
var builtinPairs = []domain.BinaryPair{
	{
		// Extended form a_ij + b_ij/T with b in K.
		First:  "ethanol",
		Second: "water",
		Params: domain.NRTLParams{
			A12:   -0.8009,
			A21:   3.4578,
			Dg12:  246.18 * domain.GasConstant,
			Dg21:  -586.0809 * domain.GasConstant,
			Alpha: 0.3,
		},
	},
	{
		First:  "methanol",
		Second: "water",
		Params: domain.NRTLParams{
			Dg12:  -253.88 * calPerMol,
			Dg21:  845.21 * calPerMol,
			Alpha: 0.2994,
		},
	},
	{
		First:  "acetone",
		Second: "water",
		Params: domain.NRTLParams{
			Dg12:  631.05 * calPerMol,
			Dg21:  1197.41 * calPerMol,
			Alpha: 0.5343,
		},
	},
	{
		First:  "acetonitrile",
		Second: "water",
		Params: domain.NRTLParams{
			A12:   0.5,
			A21:   0.3,
			Alpha: 0.3,
		},
	},
	{
		// Near-ideal; listed so the pair is not reported as defaulted.
		First:  "benzene",
		Second: "toluene",
		Params: domain.NRTLParams{Alpha: 0.3},
	},
}
