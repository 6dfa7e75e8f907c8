package properties

import (
	"fmt"
	"strings"
	"unicode"
)

type smilesAtom struct {
	symbol    string // element symbol, capitalized
	aromatic  bool
	bracket   bool
	hydrogens int
	charge    int
	bonds     []smilesBond
	ring      bool
}

type smilesBond struct {
	to       int
	order    int // 1, 2 or 3; aromatic bonds count as 1
	aromatic bool
}

type molecule struct {
	atoms []smilesAtom
}

var (
	organicSubset = map[string]bool{"B": true, "C": true, "N": true, "O": true, "P": true, "S": true, "F": true, "Cl": true, "Br": true, "I": true}
	aromaticAtoms = map[string]bool{"b": true, "c": true, "n": true, "o": true, "p": true, "s": true}
	valences      = map[string][]int{
		"B": {3}, "C": {4}, "N": {3, 5}, "O": {2}, "P": {3, 5}, "S": {2, 4, 6},
		"F": {1}, "Cl": {1}, "Br": {1}, "I": {1},
	}
)

const aromaticBond = -1

// parseSMILES reads the subset of SMILES needed for group contributions:
// organic-subset and bracket atoms, bonds, branches, ring closures and
// disconnected components. Stereo marks are accepted and ignored.
func parseSMILES(s string) (*molecule, error) {
	m := &molecule{}
	r := []rune(strings.TrimSpace(s))
	if len(r) == 0 {
		return nil, fmt.Errorf("smiles: empty")
	}

	type ringOpen struct{ atom, order int }
	var (
		prev    = -1
		pending = 0
		stack   []int
		rings   = map[int]ringOpen{}
	)

	addAtom := func(a smilesAtom) {
		m.atoms = append(m.atoms, a)
		idx := len(m.atoms) - 1
		if prev >= 0 {
			m.bond(prev, idx, pending)
		}
		prev, pending = idx, 0
	}

	for i := 0; i < len(r); i++ {
		c := r[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("smiles %q: branch without atom", s)
			}
			stack = append(stack, prev)
		case c == ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("smiles %q: unbalanced ')'", s)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case c == '-' || c == '/' || c == '\\':
			pending = 1
		case c == '=':
			pending = 2
		case c == '#':
			pending = 3
		case c == ':':
			pending = aromaticBond
		case c == '.':
			prev, pending = -1, 0
		case c == '%' || unicode.IsDigit(c):
			num := int(c - '0')
			if c == '%' {
				if i+2 >= len(r) || !unicode.IsDigit(r[i+1]) || !unicode.IsDigit(r[i+2]) {
					return nil, fmt.Errorf("smiles %q: bad ring label", s)
				}
				num = int(r[i+1]-'0')*10 + int(r[i+2]-'0')
				i += 2
			}
			if prev < 0 {
				return nil, fmt.Errorf("smiles %q: ring closure without atom", s)
			}
			if open, ok := rings[num]; ok {
				order := pending
				if order == 0 {
					order = open.order
				}
				m.bond(open.atom, prev, order)
				delete(rings, num)
			} else {
				rings[num] = ringOpen{atom: prev, order: pending}
			}
			pending = 0
		case c == '[':
			end := -1
			for j := i + 1; j < len(r); j++ {
				if r[j] == ']' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, fmt.Errorf("smiles %q: unterminated bracket atom", s)
			}
			a, err := parseBracketAtom(string(r[i+1 : end]))
			if err != nil {
				return nil, fmt.Errorf("smiles %q: %w", s, err)
			}
			addAtom(a)
			i = end
		case unicode.IsLetter(c):
			sym := string(c)
			if i+1 < len(r) && (sym == "C" && r[i+1] == 'l' || sym == "B" && r[i+1] == 'r') {
				sym += string(r[i+1])
				i++
			}
			switch {
			case organicSubset[sym]:
				addAtom(smilesAtom{symbol: sym})
			case aromaticAtoms[sym]:
				addAtom(smilesAtom{symbol: strings.ToUpper(sym), aromatic: true})
			default:
				return nil, fmt.Errorf("smiles %q: unexpected %q", s, sym)
			}
		default:
			return nil, fmt.Errorf("smiles %q: unexpected %q", s, c)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("smiles %q: unbalanced '('", s)
	}
	if len(rings) > 0 {
		return nil, fmt.Errorf("smiles %q: unclosed ring", s)
	}
	if len(m.atoms) == 0 {
		return nil, fmt.Errorf("smiles %q: no atoms", s)
	}

	m.fillHydrogens()
	m.markRings()
	return m, nil
}

func parseBracketAtom(s string) (smilesAtom, error) {
	r := []rune(s)
	i := 0
	for i < len(r) && unicode.IsDigit(r[i]) {
		i++
	}
	if i >= len(r) || !unicode.IsLetter(r[i]) {
		return smilesAtom{}, fmt.Errorf("bracket atom [%s]: missing element", s)
	}

	a := smilesAtom{bracket: true}
	if unicode.IsLower(r[i]) {
		a.aromatic = true
		a.symbol = strings.ToUpper(string(r[i]))
		i++
	} else {
		a.symbol = string(r[i])
		i++
		if i < len(r) && unicode.IsLower(r[i]) {
			if _, ok := atomicWeights[a.symbol+string(r[i])]; ok {
				a.symbol += string(r[i])
				i++
			}
		}
	}
	if _, ok := atomicWeights[a.symbol]; !ok {
		return smilesAtom{}, fmt.Errorf("bracket atom [%s]: unknown element %q", s, a.symbol)
	}

	for i < len(r) && r[i] == '@' {
		i++
	}
	if i < len(r) && r[i] == 'H' {
		a.hydrogens, i = readCount(r, i+1)
	}
	for i < len(r) && (r[i] == '+' || r[i] == '-') {
		sign := 1
		if r[i] == '-' {
			sign = -1
		}
		n, next := readCount(r, i+1)
		a.charge += sign * n
		i = next
	}
	if i < len(r) && r[i] == ':' {
		i++
		for i < len(r) && unicode.IsDigit(r[i]) {
			i++
		}
	}
	if i != len(r) {
		return smilesAtom{}, fmt.Errorf("bracket atom [%s]: unexpected %q", s, r[i])
	}
	return a, nil
}

func (m *molecule) bond(a, b, order int) {
	aromatic := false
	switch {
	case order == aromaticBond:
		order, aromatic = 1, true
	case order == 0 && m.atoms[a].aromatic && m.atoms[b].aromatic:
		order, aromatic = 1, true
	case order == 0:
		order = 1
	}
	m.atoms[a].bonds = append(m.atoms[a].bonds, smilesBond{to: b, order: order, aromatic: aromatic})
	m.atoms[b].bonds = append(m.atoms[b].bonds, smilesBond{to: a, order: order, aromatic: aromatic})
}

// fillHydrogens assigns implicit hydrogens to organic-subset atoms from their
// lowest normal valence.
func (m *molecule) fillHydrogens() {
	for i := range m.atoms {
		a := &m.atoms[i]
		if a.bracket {
			continue
		}
		sum := a.bondOrder()
		if a.aromatic && (a.symbol == "C" || a.symbol == "N" || a.symbol == "B") {
			sum++
		}
		vals := valences[a.symbol]
		for j, v := range vals {
			if v >= sum {
				if a.aromatic && j > 0 {
					break
				}
				a.hydrogens = v - sum
				break
			}
		}
	}
}

// markRings flags atoms that sit on a cycle: an atom is in a ring when one of
// its neighbors stays reachable after the direct bond between them is removed.
func (m *molecule) markRings() {
	for u := range m.atoms {
		for _, b := range m.atoms[u].bonds {
			if b.to > u && m.connectedWithout(u, b.to) {
				m.atoms[u].ring = true
				m.atoms[b.to].ring = true
			}
		}
	}
}

func (m *molecule) connectedWithout(u, v int) bool {
	seen := make([]bool, len(m.atoms))
	seen[u] = true
	queue := []int{u}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, b := range m.atoms[cur].bonds {
			if cur == u && b.to == v {
				continue
			}
			if b.to == v {
				return true
			}
			if !seen[b.to] {
				seen[b.to] = true
				queue = append(queue, b.to)
			}
		}
	}
	return false
}

func (a *smilesAtom) bondOrder() int {
	var sum int
	for _, b := range a.bonds {
		sum += b.order
	}
	return sum
}

func (a *smilesAtom) hasDouble(m *molecule, symbol string) bool {
	for _, b := range a.bonds {
		if b.order == 2 && m.atoms[b.to].symbol == symbol {
			return true
		}
	}
	return false
}

func (a *smilesAtom) maxOrder() int {
	var mx int
	for _, b := range a.bonds {
		if b.order > mx {
			mx = b.order
		}
	}
	return mx
}

func (m *molecule) composition() composition {
	c := composition{}
	for _, a := range m.atoms {
		c[a.symbol]++
		if a.hydrogens > 0 {
			c["H"] += a.hydrogens
		}
	}
	return c
}

func (m *molecule) charged() bool {
	for _, a := range m.atoms {
		if a.charge != 0 {
			return true
		}
	}
	return false
}
