package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var speciesCmd = &cobra.Command{
	Use:   "species <name>",
	Short: "Resolve a substance and print its properties",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := createEngine(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		// Multi-word names need not be quoted.
		s, err := engine.Species(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return err
		}
		if s.IsEstimated() {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %s has estimated properties\n", s.ID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(speciesCmd)
}
