// Package chart exports T-x-y diagrams as PNG images.
package chart

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default image size in pixels.
const (
	DefaultWidth  = 900
	DefaultHeight = 600
)

// Options sizes the image.
type Options struct {
	Width  int
	Height int
}

// RenderPNG draws the bubble (T vs x1) and dew (T vs y1) curves into w.
func RenderPNG(w io.Writer, res *domain.PhaseDiagramResult, opts Options) error {
	if res == nil || len(res.Points) < 2 {
		return fmt.Errorf("chart needs at least 2 points")
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	bubble := chart.ContinuousSeries{
		Name:  "bubble (liquid)",
		Style: lineStyle(chart.ColorBlue),
	}
	dew := chart.ContinuousSeries{
		Name:  "dew (vapor)",
		Style: lineStyle(chart.ColorRed),
	}

	byY := make([]domain.EquilibriumPoint, len(res.Points))
	copy(byY, res.Points)
	sort.SliceStable(byY, func(i, j int) bool { return byY[i].Y1 < byY[j].Y1 })

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range res.Points {
		bubble.XValues = append(bubble.XValues, p.X1)
		bubble.YValues = append(bubble.YValues, p.Temperature)
		lo = math.Min(lo, p.Temperature)
		hi = math.Max(hi, p.Temperature)
	}
	for _, p := range byY {
		dew.XValues = append(dew.XValues, p.Y1)
		dew.YValues = append(dew.YValues, p.Temperature)
	}
	pad := math.Max((hi-lo)*0.05, 1)

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s / %s at %.4g bar", res.Species1.ID, res.Species2.ID, res.Pressure),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "x1, y1 (" + res.Species1.ID + ")",
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		YAxis: chart.YAxis{
			Name:  "T (K)",
			Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: []chart.Series{bubble, dew},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    3,
		DotColor:    col,
	}
}
