package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vapor",
	Short: "Vapor computes binary vapor-liquid equilibrium phase diagrams",
	Long: `Vapor resolves two substances by name, formula or SMILES and computes the
isobaric T-x-y diagram of the pair with the NRTL activity model.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	registerGlobalFlags(rootCmd)
}

// registerGlobalFlags declares the flags every command reads through createEngine.
func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML configuration file")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("offline", false, "Never query the online property database")
	flags.String("redis", "", "Redis URL for caching online lookups")
	flags.String("library", "", "Directory of curated substance and pair documents")
}
