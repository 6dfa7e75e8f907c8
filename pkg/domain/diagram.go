package domain

// PhaseDiagramResult is the ordered T-x-y table for one request plus confidence metadata.
// It is built once per request and never persisted.
type PhaseDiagramResult struct {
	Species1 *Species           `json:"species1"`
	Species2 *Species           `json:"species2"`
	Pair     BinaryPair         `json:"pair"`
	Pressure float64            `json:"pressure"`
	Points   []EquilibriumPoint `json:"points"`

	// Estimated is true when either species carries estimated fields.
	Estimated bool `json:"estimated"`
	// DefaultParameters is true when the pair was not in the interaction table.
	DefaultParameters bool `json:"default_parameters"`
	// Unconverged counts points that reached the iteration bound.
	Unconverged int `json:"unconverged"`
}

// LowConfidence reports whether a consumer should warn about the diagram.
func (r *PhaseDiagramResult) LowConfidence() bool {
	return r.Estimated || r.DefaultParameters || r.Unconverged > 0
}

// Summarize recomputes the aggregate flags from the species, pair and points.
func (r *PhaseDiagramResult) Summarize() {
	r.Estimated = (r.Species1 != nil && r.Species1.IsEstimated()) ||
		(r.Species2 != nil && r.Species2.IsEstimated())
	r.DefaultParameters = r.Pair.Default
	r.Unconverged = 0
	for _, p := range r.Points {
		if p.Status == StatusUnconverged {
			r.Unconverged++
		}
	}
}

// Azeotrope is a composition where liquid and vapor compositions coincide.
type Azeotrope struct {
	X1          float64 `json:"x1"`
	Temperature float64 `json:"temperature"`
	// MinimumBoiling is true when y1 > x1 below the azeotropic composition.
	MinimumBoiling bool `json:"minimum_boiling"`
}

// Azeotrope locates the first sign change of y1-x1 between interior points and
// interpolates its composition and temperature linearly.
func (r *PhaseDiagramResult) Azeotrope() (Azeotrope, bool) {
	var prev *EquilibriumPoint
	for i := range r.Points {
		p := &r.Points[i]
		if p.Status == StatusPure {
			continue
		}
		if prev != nil {
			d0 := prev.Y1 - prev.X1
			d1 := p.Y1 - p.X1
			if d0 == 0 {
				return Azeotrope{X1: prev.X1, Temperature: prev.Temperature, MinimumBoiling: d1 < 0}, true
			}
			if d0*d1 < 0 {
				w := d0 / (d0 - d1)
				return Azeotrope{
					X1:             prev.X1 + w*(p.X1-prev.X1),
					Temperature:    prev.Temperature + w*(p.Temperature-prev.Temperature),
					MinimumBoiling: d0 > 0,
				}, true
			}
		}
		prev = p
	}
	return Azeotrope{}, false
}
