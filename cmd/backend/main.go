package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCommand = &cobra.Command{
	Use:           "backend",
	Short:         "Adopour backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
