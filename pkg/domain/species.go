package domain

import (
	"math"
	"sort"
)

// Field identifies a property of a Species that may have been estimated.
type Field string

const (
	FieldMolecularWeight Field = "molecular_weight"
	FieldBoilingPoint    Field = "boiling_point"
	FieldCritical        Field = "critical"
	FieldAntoine         Field = "antoine"
)

// Source names the resolver tier that produced a Species.
type Source string

const (
	SourceBuiltin  Source = "builtin"
	SourceLibrary  Source = "library"
	SourceOnline   Source = "online"
	SourceEstimate Source = "estimate"
)

// Antoine holds the coefficients of log10(P[mmHg]) = A - B / (T[°C] + C).
type Antoine struct {
	A float64 `json:"a" yaml:"a" mapstructure:"a"`
	B float64 `json:"b" yaml:"b" mapstructure:"b"`
	C float64 `json:"c" yaml:"c" mapstructure:"c"`
}

// IsZero reports whether no correlation is present.
func (a Antoine) IsZero() bool {
	return a.A == 0 && a.B == 0 && a.C == 0
}

// Species is a resolved pure component. It is treated as immutable once built.
type Species struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name,omitempty"`
	Formula             string  `json:"formula,omitempty"`
	SMILES              string  `json:"smiles,omitempty"`
	MolecularWeight     float64 `json:"molecular_weight,omitempty"`
	NormalBoilingPoint  float64 `json:"normal_boiling_point"`
	CriticalTemperature float64 `json:"critical_temperature,omitempty"`
	CriticalPressure    float64 `json:"critical_pressure,omitempty"`
	AcentricFactor      float64 `json:"acentric_factor,omitempty"`
	Antoine             Antoine `json:"antoine"`
	// NonVolatile marks solutes (salts) whose vapor pressure is taken as zero.
	NonVolatile bool           `json:"non_volatile,omitempty"`
	Source      Source         `json:"source"`
	Estimated   map[Field]bool `json:"estimated,omitempty"`
}

// IsEstimated reports whether any field was supplied by a fallback tier.
func (s *Species) IsEstimated() bool {
	for _, v := range s.Estimated {
		if v {
			return true
		}
	}
	return false
}

// EstimatedFields returns the estimated fields in a stable order.
func (s *Species) EstimatedFields() []Field {
	fields := make([]Field, 0, len(s.Estimated))
	for f, v := range s.Estimated {
		if v {
			fields = append(fields, f)
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// MarkEstimated flags the given fields as estimated.
func (s *Species) MarkEstimated(fields ...Field) {
	if s.Estimated == nil {
		s.Estimated = make(map[Field]bool, len(fields))
	}
	for _, f := range fields {
		s.Estimated[f] = true
	}
}

// VaporPressure returns the saturation pressure in bar at temperature t (K).
// Non-volatile species and species without a correlation return 0.
func (s *Species) VaporPressure(t float64) float64 {
	if s.NonVolatile || s.Antoine.IsZero() {
		return 0
	}
	denom := t - CelsiusOffset + s.Antoine.C
	if denom <= 0 {
		return 0
	}
	exponent := s.Antoine.A - s.Antoine.B/denom
	// 10^308 is the largest finite power of ten.
	if exponent > 308 {
		exponent = 308
	}
	return math.Pow(10, exponent) / MmHgPerBar
}

// BoilingPoint returns the saturation temperature (K) at pressure p (bar),
// inverting the Antoine correlation in closed form.
func (s *Species) BoilingPoint(p float64) float64 {
	if s.NonVolatile || s.Antoine.IsZero() || p <= 0 {
		return s.NormalBoilingPoint
	}
	logP := math.Log10(p * MmHgPerBar)
	if s.Antoine.A-logP <= 0 {
		return s.NormalBoilingPoint
	}
	return s.Antoine.B/(s.Antoine.A-logP) - s.Antoine.C + CelsiusOffset
}

// Clone returns a deep copy so callers can adjust a cached record safely.
func (s *Species) Clone() *Species {
	c := *s
	if s.Estimated != nil {
		c.Estimated = make(map[Field]bool, len(s.Estimated))
		for k, v := range s.Estimated {
			c.Estimated[k] = v
		}
	}
	return &c
}
