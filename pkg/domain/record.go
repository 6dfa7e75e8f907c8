package domain

// PropertyRecord is a partial property record returned by an external property database.
// Zero values mean "not supplied".
type PropertyRecord struct {
	Name                string   `json:"name,omitempty"`
	Formula             string   `json:"formula,omitempty"`
	SMILES              string   `json:"smiles,omitempty"`
	MolecularWeight     float64  `json:"molecular_weight,omitempty"`
	NormalBoilingPoint  float64  `json:"normal_boiling_point,omitempty"`
	CriticalTemperature float64  `json:"critical_temperature,omitempty"`
	CriticalPressure    float64  `json:"critical_pressure,omitempty"`
	Antoine             *Antoine `json:"antoine,omitempty"`
}

// HasVolatility reports whether the record alone is enough to build a usable Species.
func (r *PropertyRecord) HasVolatility() bool {
	return r.NormalBoilingPoint > 0 && r.Antoine != nil && !r.Antoine.IsZero()
}

// HasStructure reports whether the record carries structural hints for estimation.
func (r *PropertyRecord) HasStructure() bool {
	return r.Formula != "" || r.SMILES != "" || r.MolecularWeight > 0
}
