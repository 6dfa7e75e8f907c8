package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseDiagramResult_Summarize(t *testing.T) {
	s1 := &Species{ID: "a"}
	s2 := &Species{ID: "b"}
	s2.MarkEstimated(FieldBoilingPoint)

	r := &PhaseDiagramResult{
		Species1: s1,
		Species2: s2,
		Pair:     BinaryPair{First: "a", Second: "b", Default: true},
		Points: []EquilibriumPoint{
			{X1: 0, Status: StatusPure},
			{X1: 0.5, Status: StatusUnconverged},
			{X1: 1, Status: StatusPure},
		},
	}
	r.Summarize()

	assert.True(t, r.Estimated)
	assert.True(t, r.DefaultParameters)
	assert.Equal(t, 1, r.Unconverged)
	assert.True(t, r.LowConfidence())

	clean := &PhaseDiagramResult{Species1: s1, Species2: &Species{ID: "c"}}
	clean.Summarize()
	assert.False(t, clean.LowConfidence())
}

func TestPhaseDiagramResult_Azeotrope(t *testing.T) {
	tests := []struct {
		name   string
		points []EquilibriumPoint
		want   Azeotrope
		found  bool
	}{
		{
			name: "minimum boiling",
			points: []EquilibriumPoint{
				{X1: 0, Y1: 0, Temperature: 373, Status: StatusPure},
				{X1: 0.4, Y1: 0.6, Temperature: 355, Status: StatusConverged},
				{X1: 0.8, Y1: 0.85, Temperature: 352, Status: StatusConverged},
				{X1: 0.9, Y1: 0.85, Temperature: 354, Status: StatusConverged},
				{X1: 1, Y1: 1, Temperature: 356, Status: StatusPure},
			},
			want:  Azeotrope{X1: 0.85, Temperature: 353, MinimumBoiling: true},
			found: true,
		},
		{
			name: "maximum boiling",
			points: []EquilibriumPoint{
				{X1: 0, Y1: 0, Temperature: 350, Status: StatusPure},
				{X1: 0.25, Y1: 0.15, Temperature: 360, Status: StatusConverged},
				{X1: 0.75, Y1: 0.85, Temperature: 362, Status: StatusConverged},
				{X1: 1, Y1: 1, Temperature: 355, Status: StatusPure},
			},
			want:  Azeotrope{X1: 0.5, Temperature: 361, MinimumBoiling: false},
			found: true,
		},
		{
			name: "zeotropic",
			points: []EquilibriumPoint{
				{X1: 0, Y1: 0, Temperature: 384, Status: StatusPure},
				{X1: 0.5, Y1: 0.7, Temperature: 365, Status: StatusConverged},
				{X1: 1, Y1: 1, Temperature: 353, Status: StatusPure},
			},
			found: false,
		},
		{
			name: "endpoints only",
			points: []EquilibriumPoint{
				{X1: 0, Y1: 0, Status: StatusPure},
				{X1: 1, Y1: 1, Status: StatusPure},
			},
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &PhaseDiagramResult{Points: tt.points}
			got, ok := r.Azeotrope()
			assert.Equal(t, tt.found, ok)
			if !tt.found {
				return
			}
			assert.InDelta(t, tt.want.X1, got.X1, 1e-12)
			assert.InDelta(t, tt.want.Temperature, got.Temperature, 1e-9)
			assert.Equal(t, tt.want.MinimumBoiling, got.MinimumBoiling)
		})
	}
}

func TestEquilibriumPoint_Complements(t *testing.T) {
	p := EquilibriumPoint{X1: 0.25, Y1: 0.6, Status: StatusConverged}
	assert.InDelta(t, 0.75, p.X2(), 1e-15)
	assert.InDelta(t, 0.4, p.Y2(), 1e-15)
	assert.True(t, p.Converged())
	assert.False(t, EquilibriumPoint{Status: StatusUnconverged}.Converged())
}
