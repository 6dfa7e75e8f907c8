package loam

import (
	"github.com/aretw0/vapor/pkg/domain"
)

// Record kinds stored in a library.
const (
	KindSubstance = "substance"
	KindPair      = "pair"
)

// RecordMetadata is the frontmatter of a library document.
// It uses "mapstructure" tags to match the YAML/JSON keys written by curators.
type RecordMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Kind string `json:"kind" mapstructure:"kind"`

	// Substance fields
	Name                string          `json:"name" mapstructure:"name"`
	Aliases             []string        `json:"aliases" mapstructure:"aliases"`
	Formula             string          `json:"formula" mapstructure:"formula"`
	SMILES              string          `json:"smiles" mapstructure:"smiles"`
	MolecularWeight     float64         `json:"molecular_weight" mapstructure:"molecular_weight"`
	NormalBoilingPoint  float64         `json:"boiling_point" mapstructure:"boiling_point"`
	CriticalTemperature float64         `json:"critical_temperature" mapstructure:"critical_temperature"`
	CriticalPressure    float64         `json:"critical_pressure" mapstructure:"critical_pressure"`
	AcentricFactor      float64         `json:"acentric_factor" mapstructure:"acentric_factor"`
	Antoine             *domain.Antoine `json:"antoine" mapstructure:"antoine"`
	NonVolatile         bool            `json:"non_volatile" mapstructure:"non_volatile"`

	// Pair fields; Params are oriented with First as component 1.
	First  string             `json:"first" mapstructure:"first"`
	Second string             `json:"second" mapstructure:"second"`
	NRTL   *domain.NRTLParams `json:"nrtl" mapstructure:"nrtl"`
}

func (m RecordMetadata) kind() string {
	if m.Kind == "" {
		if m.First != "" || m.Second != "" {
			return KindPair
		}
		return KindSubstance
	}
	return m.Kind
}

func (m RecordMetadata) volatile() bool {
	return m.NormalBoilingPoint > 0 && m.Antoine != nil && !m.Antoine.IsZero()
}
