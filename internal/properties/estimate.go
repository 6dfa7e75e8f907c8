package properties

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/aretw0/vapor/pkg/ports"
)

const (
	// jobackBase is the constant term of the Joback boiling point correlation (K).
	jobackBase = 198.0
	// guldbergRatio is Tb/Tc in Guldberg's rule.
	guldbergRatio = 0.62
	// troutonEntropy is the entropy of vaporization at Tb in J/(mol*K).
	troutonEntropy = 88.0
	// saltBoilingPoint stands in for the boiling point of ionic solutes (K).
	saltBoilingPoint = 1700.0
	// minEstimatedTb keeps estimates of very small molecules physical (K).
	minEstimatedTb = 150.0
)

// Estimator derives low-accuracy properties from structure alone.
// It is the last tier of the chain and flags every field as estimated.
type Estimator struct{}

// NewEstimator creates the estimation provider.
func NewEstimator() *Estimator {
	return &Estimator{}
}

func (e *Estimator) Name() string          { return "estimate" }
func (e *Estimator) Source() domain.Source { return domain.SourceEstimate }

// Provide estimates from hints gathered by earlier tiers, or from the raw
// identifier read as SMILES or a molecular formula.
func (e *Estimator) Provide(_ context.Context, q *ports.Query) (*domain.Species, error) {
	st, err := structureOf(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoData, err)
	}

	s := &domain.Species{
		ID:      q.Identifier,
		Name:    q.Hints.Name,
		Formula: q.Hints.Formula,
		SMILES:  q.Hints.SMILES,
		Source:  domain.SourceEstimate,
	}
	if s.Name == "" {
		s.Name = strings.TrimSpace(q.Raw)
	}

	s.MolecularWeight = q.Hints.MolecularWeight
	if s.MolecularWeight <= 0 {
		s.MolecularWeight = st.comp.molecularWeight()
	}

	if st.ionic {
		s.NonVolatile = true
		s.NormalBoilingPoint = saltBoilingPoint
		s.MarkEstimated(domain.FieldMolecularWeight, domain.FieldBoilingPoint)
		return s, nil
	}

	tb := q.Hints.NormalBoilingPoint
	if tb <= 0 {
		tb = math.Max(jobackBase+st.tbSum, minEstimatedTb)
	}
	s.NormalBoilingPoint = tb
	s.CriticalTemperature = tb / guldbergRatio
	s.CriticalPressure = criticalPressure(st.comp.atoms())
	s.AcentricFactor = edmister(tb, s.CriticalTemperature, s.CriticalPressure)
	s.Antoine = troutonAntoine(tb)

	s.MarkEstimated(domain.FieldMolecularWeight, domain.FieldBoilingPoint, domain.FieldCritical, domain.FieldAntoine)
	return s, nil
}

// criticalPressure applies the Joback Pc form with group increments neglected (bar).
func criticalPressure(atoms int) float64 {
	d := 0.113 + 0.0032*float64(atoms)
	return 1 / (d * d)
}

// edmister estimates the acentric factor from Tb, Tc and Pc (bar).
func edmister(tb, tc, pc float64) float64 {
	theta := tb / tc
	return 3.0/7.0*theta/(1-theta)*math.Log10(pc/domain.AtmosphereBar) - 1
}

// troutonAntoine builds Antoine coefficients (mmHg, °C) whose curve passes
// through 1 atm at tb with the Clausius-Clapeyron slope of a Trouton liquid.
// C follows Thompson's rule, C[K] = -18 + 0.19*Tb.
func troutonAntoine(tb float64) domain.Antoine {
	ck := -18 + 0.19*tb
	dh := troutonEntropy * tb
	shifted := tb - ck
	b := dh * shifted * shifted / (math.Ln10 * domain.GasConstant * tb * tb)
	return domain.Antoine{
		A: math.Log10(domain.AtmosphereBar*domain.MmHgPerBar) + b/shifted,
		B: b,
		C: domain.CelsiusOffset - ck,
	}
}

type structure struct {
	comp  composition
	tbSum float64
	ionic bool
}

// structureOf picks the richest structural description available.
func structureOf(q *ports.Query) (*structure, error) {
	if q.Hints.SMILES != "" {
		if st, err := fromSMILES(q.Hints.SMILES); err == nil {
			return st, nil
		}
	}
	if q.Hints.Formula != "" {
		if st, err := fromFormula(q.Hints.Formula); err == nil {
			return st, nil
		}
	}

	raw := strings.TrimSpace(q.Raw)
	if raw == "" {
		return nil, fmt.Errorf("no structural information for %q", q.Identifier)
	}
	// Hydrogens only appear inside brackets in SMILES, so a bare H means a formula.
	if strings.ContainsRune(stripBrackets(raw), 'H') {
		if st, err := fromFormula(raw); err == nil {
			return st, nil
		}
	}
	if st, err := fromSMILES(raw); err == nil {
		return st, nil
	}
	if st, err := fromFormula(raw); err == nil {
		return st, nil
	}
	return nil, fmt.Errorf("no structural information for %q", q.Identifier)
}

func stripBrackets(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fromFormula(f string) (*structure, error) {
	comp, err := parseFormula(f)
	if err != nil {
		return nil, err
	}
	st := &structure{comp: comp, ionic: comp.ionic()}
	for el, n := range comp {
		st.tbSum += elementTb[el] * float64(n)
	}
	return st, nil
}

func fromSMILES(s string) (*structure, error) {
	m, err := parseSMILES(s)
	if err != nil {
		return nil, err
	}
	comp := m.composition()
	st := &structure{comp: comp, ionic: comp.ionic() || m.charged()}
	for i := range m.atoms {
		st.tbSum += m.jobackTb(i)
	}
	return st, nil
}

// jobackTb returns the Joback boiling point increment (K) of the group centered
// on heavy atom i. Carbonyl oxygens and nitrile nitrogens are counted on their
// carbon.
func (m *molecule) jobackTb(i int) float64 {
	a := &m.atoms[i]
	switch a.symbol {
	case "C":
		return m.carbonTb(a)
	case "O":
		return m.oxygenTb(a)
	case "N":
		return m.nitrogenTb(a)
	case "S":
		switch {
		case a.hydrogens > 0:
			return 63.56
		case a.ring:
			return 52.10
		default:
			return 68.78
		}
	case "F":
		return -0.03
	case "Cl":
		return 38.13
	case "Br":
		return 66.86
	case "I":
		return 93.84
	}
	return elementTb[a.symbol]
}

func (m *molecule) carbonTb(a *smilesAtom) float64 {
	switch {
	case a.hasDouble(m, "O"):
		switch {
		case a.ring:
			return 94.97
		case a.hydrogens > 0:
			return 72.24 // aldehyde
		default:
			return 76.75
		}
	case a.maxOrder() == 3:
		for _, b := range a.bonds {
			if b.order == 3 && m.atoms[b.to].symbol == "N" {
				return 125.66 // nitrile
			}
		}
		if a.hydrogens > 0 {
			return 9.20
		}
		return 27.38
	case a.aromatic:
		if a.hydrogens > 0 {
			return 26.73
		}
		return 31.01
	case a.maxOrder() == 2:
		switch {
		case a.hydrogens >= 2:
			return 18.18
		case a.hydrogens == 1 && a.ring:
			return 26.73
		case a.hydrogens == 1:
			return 24.96
		case a.ring:
			return 31.01
		default:
			return 24.14
		}
	}

	switch {
	case a.hydrogens >= 3:
		return 23.58
	case a.hydrogens == 2 && a.ring:
		return 27.15
	case a.hydrogens == 2:
		return 22.88
	case a.hydrogens == 1 && a.ring:
		return 21.78
	case a.hydrogens == 1:
		return 21.74
	case a.ring:
		return 21.32
	default:
		return 18.25
	}
}

func (m *molecule) oxygenTb(a *smilesAtom) float64 {
	if a.maxOrder() == 2 {
		return 0
	}
	switch {
	case a.hydrogens >= 2:
		return 2 * 92.88
	case a.hydrogens == 1:
		for _, b := range a.bonds {
			if m.atoms[b.to].aromatic {
				return 76.34 // phenol
			}
		}
		return 92.88
	case a.ring:
		return 31.22
	default:
		return 22.42
	}
}

func (m *molecule) nitrogenTb(a *smilesAtom) float64 {
	if a.maxOrder() == 3 {
		return 0
	}
	switch {
	case a.hydrogens >= 2:
		return 73.23
	case a.aromatic && a.hydrogens == 0:
		return 68.40
	case a.hydrogens == 1 && a.ring:
		return 52.82
	case a.hydrogens == 1:
		return 50.17
	case a.maxOrder() == 2:
		return 74.60
	case a.ring:
		return 57.55
	default:
		return 11.74
	}
}
