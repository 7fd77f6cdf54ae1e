package main

import (
	"os"

	"github.com/spf13/cobra"
)

type options struct {
	configFile string
	jsonOutput bool
	limit      int
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "chemalert",
		Short: "Harmful chemical catalog for everyday consumer products",
		Long: `chemalert serves a read-only catalog of consumer products and the harmful
chemicals they contain, over a JSON API or straight from the command line.

Run "chemalert serve" to start the API server.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (yaml)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print JSON instead of text")

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newProductCmd(opts),
		newStatsCmd(opts),
		newChemicalCmd(opts),
		newInitdbCmd(opts),
		newExportCmd(opts),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
