package thermo

import (
	"math"

	"github.com/aretw0/vapor/pkg/domain"
)

const (
	// maxExponent bounds every argument passed to math.Exp so that G, G^2 and
	// tau*G stay finite.
	maxExponent = 300.0

	// maxTau bounds the temperature-normalized interaction energies.
	maxTau = 1e3

	// maxLnGamma bounds ln(gamma); gamma is therefore within [e^-100, e^100].
	maxLnGamma = 100.0

	// minTemperature keeps Dg/(R*T) defined.
	minTemperature = 1e-6
)

// Tau returns the temperature-normalized interaction terms tau12 and tau21 at t (K).
func Tau(p domain.NRTLParams, t float64) (float64, float64) {
	if t < minTemperature {
		t = minTemperature
	}
	rt := domain.GasConstant * t
	return clamp(p.A12+p.Dg12/rt, maxTau), clamp(p.A21+p.Dg21/rt, maxTau)
}

// Gamma returns the NRTL activity coefficients of both components at liquid
// mole fraction x1 and temperature t (K).
//
// At x1=0 the result is the infinite-dilution value of gamma1 and gamma2=1;
// at x1=1 the roles are reversed. Both coefficients are always finite.
func Gamma(x1, t float64, p domain.NRTLParams) (float64, float64) {
	lng1, lng2 := LnGamma(x1, t, p)
	return math.Exp(lng1), math.Exp(lng2)
}

// LnGamma returns ln(gamma1) and ln(gamma2), each clamped to ±maxLnGamma.
func LnGamma(x1, t float64, p domain.NRTLParams) (float64, float64) {
	x1 = clamp01(x1)
	x2 := 1 - x1

	tau12, tau21 := Tau(p, t)
	g12 := safeExp(-p.Alpha * tau12)
	g21 := safeExp(-p.Alpha * tau21)

	// Denominators are strictly positive: G > 0 and x1 + x2 = 1.
	d1 := x1 + x2*g21
	d2 := x2 + x1*g12

	lng1 := x2 * x2 * (tau21*sq(g21/d1) + tau12*g12/(d2*d2))
	lng2 := x1 * x1 * (tau12*sq(g12/d2) + tau21*g21/(d1*d1))

	return saturate(lng1), saturate(lng2)
}

func safeExp(v float64) float64 {
	return math.Exp(clamp(v, maxExponent))
}

func saturate(lng float64) float64 {
	if math.IsNaN(lng) {
		return 0
	}
	return clamp(lng, maxLnGamma)
}

func clamp(v, limit float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return v
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func sq(v float64) float64 {
	return v * v
}
