package main

import (
	"fmt"

	"github.com/aretw0/vapor"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vapor",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vapor version %s\n", vapor.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
