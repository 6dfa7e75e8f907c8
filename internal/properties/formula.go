package properties

import (
	"fmt"
	"unicode"
)

// atomicWeights covers the elements the estimator understands, in g/mol.
var atomicWeights = map[string]float64{
	"H": 1.008, "Li": 6.94, "B": 10.81, "C": 12.011, "N": 14.007, "O": 15.999,
	"F": 18.998, "Na": 22.990, "Mg": 24.305, "Si": 28.085, "P": 30.974, "S": 32.06,
	"Cl": 35.45, "K": 39.098, "Ca": 40.078, "Br": 79.904, "Rb": 85.468, "Sr": 87.62,
	"I": 126.904, "Cs": 132.905, "Ba": 137.327,
}

// metals mark ionic solutes, which are treated as non-volatile.
var metals = map[string]bool{
	"Li": true, "Na": true, "K": true, "Rb": true, "Cs": true,
	"Mg": true, "Ca": true, "Sr": true, "Ba": true,
}

// elementTb holds per-atom boiling point increments (K) used when only a
// formula is known. Values average the matching Joback groups.
var elementTb = map[string]float64{
	"C": 22.9, "N": 40.0, "O": 50.0, "F": -0.03, "Cl": 38.13, "Br": 66.86,
	"I": 93.84, "S": 68.78, "P": 40.0, "Si": 30.0, "B": 20.0,
}

// composition is an element -> atom count map, hydrogens included.
type composition map[string]int

func (c composition) molecularWeight() float64 {
	var mw float64
	for el, n := range c {
		mw += atomicWeights[el] * float64(n)
	}
	return mw
}

func (c composition) atoms() int {
	var n int
	for _, v := range c {
		n += v
	}
	return n
}

func (c composition) heavyAtoms() int {
	return c.atoms() - c["H"]
}

func (c composition) ionic() bool {
	for el := range c {
		if metals[el] {
			return true
		}
	}
	return false
}

// parseFormula reads a Hill-style molecular formula such as C2H6O or Ca(OH)2.
func parseFormula(s string) (composition, error) {
	counts, rest, err := parseGroup([]rune(s), 0)
	if err != nil {
		return nil, err
	}
	if rest != len([]rune(s)) {
		return nil, fmt.Errorf("formula %q: unbalanced ')'", s)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("formula %q: no elements", s)
	}
	return counts, nil
}

func parseGroup(r []rune, i int) (composition, int, error) {
	counts := composition{}
	for i < len(r) {
		switch c := r[i]; {
		case c == '(':
			inner, next, err := parseGroup(r, i+1)
			if err != nil {
				return nil, 0, err
			}
			if next >= len(r) || r[next] != ')' {
				return nil, 0, fmt.Errorf("formula: missing ')'")
			}
			n, after := readCount(r, next+1)
			for el, k := range inner {
				counts[el] += k * n
			}
			i = after
		case c == ')':
			return counts, i, nil
		case unicode.IsUpper(c):
			sym := string(c)
			if i+1 < len(r) && unicode.IsLower(r[i+1]) {
				if _, ok := atomicWeights[sym+string(r[i+1])]; ok {
					sym += string(r[i+1])
				}
			}
			if _, ok := atomicWeights[sym]; !ok {
				return nil, 0, fmt.Errorf("formula: unknown element %q", sym)
			}
			n, after := readCount(r, i+len(sym))
			counts[sym] += n
			i = after
		default:
			return nil, 0, fmt.Errorf("formula: unexpected %q", c)
		}
	}
	return counts, i, nil
}

// readCount returns the integer at r[i:] (1 when absent) and the index after it.
func readCount(r []rune, i int) (int, int) {
	n, j := 0, i
	for j < len(r) && r[j] >= '0' && r[j] <= '9' {
		n = n*10 + int(r[j]-'0')
		j++
	}
	if j == i {
		return 1, i
	}
	return n, j
}
