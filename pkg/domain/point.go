package domain

// Status describes how an EquilibriumPoint was obtained.
type Status string

const (
	// StatusConverged means the bubble-point iteration met its tolerance.
	StatusConverged Status = "converged"
	// StatusUnconverged means the iteration bound was reached; T is the best estimate.
	StatusUnconverged Status = "unconverged"
	// StatusPure marks the x1=0 and x1=1 endpoints, which bypass the solver.
	StatusPure Status = "pure"
)

// EquilibriumPoint is one (x1, y1, T) triple of a T-x-y diagram.
type EquilibriumPoint struct {
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	Temperature float64 `json:"temperature"`
	Status      Status  `json:"status"`
	Iterations  int     `json:"iterations"`
	// Residual is |f(T)| in bar at the returned temperature.
	Residual float64 `json:"residual"`
	Gamma1   float64 `json:"gamma1"`
	Gamma2   float64 `json:"gamma2"`
}

// Y2 returns the vapor mole fraction of component 2.
func (p EquilibriumPoint) Y2() float64 {
	return 1 - p.Y1
}

// X2 returns the liquid mole fraction of component 2.
func (p EquilibriumPoint) X2() float64 {
	return 1 - p.X1
}

// Converged reports whether the point is trustworthy (solved or pure).
func (p EquilibriumPoint) Converged() bool {
	return p.Status != StatusUnconverged
}
