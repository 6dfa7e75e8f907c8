package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/vapor/pkg/domain"
)

// Markdown formats a diagram as a Markdown document with a T-x-y table.
func Markdown(res *domain.PhaseDiagramResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s / %s at %.4g bar\n\n", res.Species1.ID, res.Species2.ID, res.Pressure)
	fmt.Fprintf(&sb, "| x1 | y1 | T (K) | T (°C) | status |\n")
	fmt.Fprintf(&sb, "|---:|---:|---:|---:|:---|\n")
	for _, p := range res.Points {
		fmt.Fprintf(&sb, "| %.4f | %.4f | %.2f | %.2f | %s |\n",
			p.X1, p.Y1, p.Temperature, p.Temperature-domain.CelsiusOffset, p.Status)
	}

	if az, ok := res.Azeotrope(); ok {
		kind := "maximum-boiling"
		if az.MinimumBoiling {
			kind = "minimum-boiling"
		}
		fmt.Fprintf(&sb, "\n**Azeotrope** (%s) near x1 = %.3f, T = %.2f K\n", kind, az.X1, az.Temperature)
	}
	return sb.String()
}

// Render writes the diagram table to w, styled through glamour when w is a terminal.
func Render(w io.Writer, res *domain.PhaseDiagramResult) error {
	md := Markdown(res)
	if IsTerminal(w) {
		out, err := NewRenderer()(md)
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		md = out
	}
	if _, err := io.WriteString(w, md); err != nil {
		return err
	}
	PrintWarnings(w, res)
	return nil
}
