package main

import (
	"os"

	"github.com/spf13/cobra"

	"fieldops/internal/interfaces/cli/migrate"
	"fieldops/internal/interfaces/cli/seed"
	"fieldops/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldops",
		Short: "fieldops - field service ticket lifecycle backend",
		Long:  `fieldops manages field service tickets: creation, assignment, status workflow, activity trail and the live ticket feed.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
