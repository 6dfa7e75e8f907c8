package domain

// NRTLParams are the binary NRTL parameters oriented as component 1 / component 2.
//
// The interaction terms follow tau_ij = A_ij + Dg_ij / (R*T), with Dg in J/mol.
// A_ij is zero for the classic form and carries the constant part of the
// extended (a_ij + b_ij/T) correlation otherwise.
type NRTLParams struct {
	A12   float64 `json:"a12" yaml:"a12" mapstructure:"a12"`
	A21   float64 `json:"a21" yaml:"a21" mapstructure:"a21"`
	Dg12  float64 `json:"dg12" yaml:"dg12" mapstructure:"dg12"`
	Dg21  float64 `json:"dg21" yaml:"dg21" mapstructure:"dg21"`
	Alpha float64 `json:"alpha" yaml:"alpha" mapstructure:"alpha"`
}

// Swapped returns the parameters with the component roles exchanged.
func (p NRTLParams) Swapped() NRTLParams {
	return NRTLParams{
		A12:   p.A21,
		A21:   p.A12,
		Dg12:  p.Dg21,
		Dg21:  p.Dg12,
		Alpha: p.Alpha,
	}
}

// IsIdeal reports whether the parameters describe an ideal solution.
func (p NRTLParams) IsIdeal() bool {
	return p.A12 == 0 && p.A21 == 0 && p.Dg12 == 0 && p.Dg21 == 0
}

// BinaryPair holds interaction parameters for an unordered pair of species.
// First and Second are always in canonical (lexicographic) order and Params is
// oriented with First as component 1.
type BinaryPair struct {
	First   string     `json:"first"`
	Second  string     `json:"second"`
	Params  NRTLParams `json:"params"`
	Default bool       `json:"default"`
}

// CanonicalOrder returns a and b sorted lexicographically and whether they were swapped.
func CanonicalOrder(a, b string) (string, string, bool) {
	if b < a {
		return b, a, true
	}
	return a, b, false
}

// Oriented returns the parameters with component 1 set to firstID.
func (p BinaryPair) Oriented(firstID string) NRTLParams {
	if firstID == p.Second && p.First != p.Second {
		return p.Params.Swapped()
	}
	return p.Params
}
