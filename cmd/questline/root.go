package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the Questline CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questline",
		Short: "Questline - player progression service",
		Long: `Questline tracks per-player character ownership, selection,
leveling, and quest completions behind an HTTP API.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}
