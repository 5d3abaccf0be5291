package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "inkpost-admin",
		Short:        "Inkpost administration tool",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "./configs", "directory containing config.yaml")

	rootCmd.AddCommand(
		MigrateCmd(),
		PromoteCmd(),
		DemoteCmd(),
		WhoamiCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
