package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List the known NRTL interaction parameters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := createEngine(cmd)
		if err != nil {
			return err
		}
		defer engine.Close()

		pairs, err := engine.Pairs(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FIRST\tSECOND\tA12\tA21\tDG12\tDG21\tALPHA")
		for _, p := range pairs {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%g\n",
				p.First, p.Second, p.Params.A12, p.Params.A21, p.Params.Dg12, p.Params.Dg21, p.Params.Alpha)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
}
