package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	verboseFlag bool
	dbFlag      string
)

var rootCmd = &cobra.Command{
	Use:          "lsys",
	Short:        "L-system generator and turtle renderer",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print expansion details")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", defaultDBPath, "Workspace database")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
