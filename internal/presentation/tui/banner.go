package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner outputs a small title line for interactive sessions.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	title := termenv.String(" vapor ").Foreground(p.Color("#0f172a")).Background(p.Color("#38bdf8")).Bold()
	sub := termenv.String(" binary T-x-y phase diagrams " + version).Foreground(p.Color("#94a3b8"))
	fmt.Fprintf(w, "\n%s%s\n\n", title, sub)
}

// Warnings lists the reasons a diagram should be read with care.
func Warnings(res *domain.PhaseDiagramResult) []string {
	var out []string
	if res.Species1 != nil && res.Species1.IsEstimated() {
		out = append(out, fmt.Sprintf("%s: estimated %s", res.Species1.ID, joinFields(res.Species1.EstimatedFields())))
	}
	if res.Species2 != nil && res.Species2.IsEstimated() {
		out = append(out, fmt.Sprintf("%s: estimated %s", res.Species2.ID, joinFields(res.Species2.EstimatedFields())))
	}
	if res.DefaultParameters {
		out = append(out, "no interaction parameters for this pair; ideal solution assumed")
	}
	if res.Unconverged > 0 {
		out = append(out, fmt.Sprintf("%d point(s) did not converge", res.Unconverged))
	}
	return out
}

// PrintWarnings writes the low-confidence reasons in a warning color. It writes nothing
// for a trustworthy diagram.
func PrintWarnings(w io.Writer, res *domain.PhaseDiagramResult) {
	reasons := Warnings(res)
	if len(reasons) == 0 {
		return
	}
	p := termenv.NewOutput(w).Profile
	head := termenv.String("⚠ low confidence").Foreground(p.Color("#f59e0b")).Bold()
	fmt.Fprintln(w, head)
	for _, r := range reasons {
		fmt.Fprintln(w, termenv.String("  - "+r).Foreground(p.Color("#fbbf24")))
	}
}

func joinFields(fields []domain.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
