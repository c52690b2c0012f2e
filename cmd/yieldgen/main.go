package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "yieldgen",
		Short:   "Inspect and export creator yield curves",
		Version: Version,
	}

	root.AddCommand(bandCmd())
	root.AddCommand(seriesCmd())
	root.AddCommand(datasetCmd())

	return root
}
