package main

import (
	"fmt"
	"os"

	"github.com/aretw0/vapor"
	"github.com/aretw0/vapor/internal/presentation/chart"
	"github.com/aretw0/vapor/internal/presentation/tui"
	"github.com/aretw0/vapor/pkg/domain"
	"github.com/spf13/cobra"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <a> <b>",
	Short: "Compute the T-x-y diagram of a binary mixture",
	Long: `Computes bubble temperatures and vapor compositions of a (component 1) and b
over evenly spaced liquid compositions at constant pressure.

Output formats:
- table (default): Markdown table, styled when writing to a terminal.
- json: the full result document.
- csv: x1, y1, T (K) and status columns.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		engine, _, err := createEngine(cmd, workerOption(cmd, workers)...)
		if err != nil {
			return err
		}
		defer engine.Close()

		cfg := engine.Config()
		pressure := cfg.Diagram.Pressure
		if cmd.Flags().Changed("pressure") {
			pressure, _ = cmd.Flags().GetFloat64("pressure")
		}
		points := cfg.Diagram.Points
		if cmd.Flags().Changed("points") {
			points, _ = cmd.Flags().GetInt("points")
		}

		res, err := engine.Diagram(cmd.Context(), args[0], args[1], pressure, points)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("png"); path != "" {
			if err := writePNG(path, res); err != nil {
				return err
			}
		}

		format, _ := cmd.Flags().GetString("format")
		out := cmd.OutOrStdout()
		switch format {
		case "table":
			return tui.Render(out, res)
		case "json":
			if err := writeJSON(out, res); err != nil {
				return err
			}
		case "csv":
			if err := writeCSV(out, res); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q (table, json or csv)", format)
		}
		tui.PrintWarnings(cmd.ErrOrStderr(), res)
		return nil
	},
}

func workerOption(cmd *cobra.Command, workers int) []vapor.Option {
	if !cmd.Flags().Changed("workers") {
		return nil
	}
	return []vapor.Option{vapor.WithWorkers(workers)}
}

func writePNG(path string, res *domain.PhaseDiagramResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := chart.RenderPNG(f, res, chart.Options{}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().Float64P("pressure", "P", 0, "System pressure in bar (default from config, 1.013)")
	diagramCmd.Flags().IntP("points", "n", 0, "Number of liquid compositions, endpoints included (default from config, 21)")
	diagramCmd.Flags().Int("workers", 1, "Compositions solved concurrently")
	diagramCmd.Flags().StringP("format", "f", "table", "Output format: table, json or csv")
	diagramCmd.Flags().String("png", "", "Also draw the diagram into this PNG file")
}
