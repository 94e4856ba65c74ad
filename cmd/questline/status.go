package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questline/questline/internal/config"
	"github.com/questline/questline/internal/store"
)

// SchemaStatus holds migration state for reporting.
type SchemaStatus struct {
	Version  uint   `json:"version"`
	Name     string `json:"name,omitempty"`
	Dirty    bool   `json:"dirty"`
	Pending  []uint `json:"pending,omitempty"`
	UpToDate bool   `json:"up_to_date"`
}

// statusConfig holds configuration for the status subcommand.
type statusConfig struct {
	jsonOutput bool
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show database schema status",
		Long:  `Show the current schema version and any pending migrations.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")
	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")

	return cmd
}

func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	serviceCfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	migrator, err := store.NewMigrator(serviceCfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	pending, err := migrator.PendingMigrations()
	if err != nil {
		return err
	}
	name, err := store.MigrationName(version)
	if err != nil {
		return err
	}

	status := SchemaStatus{
		Version:  version,
		Name:     name,
		Dirty:    dirty,
		Pending:  pending,
		UpToDate: len(pending) == 0 && !dirty,
	}

	if cfg.jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if status.Name != "" {
		cmd.Printf("Schema version: %d (%s)\n", status.Version, status.Name)
	} else {
		cmd.Printf("Schema version: %d\n", status.Version)
	}
	cmd.Printf("Dirty: %v\n", status.Dirty)
	if len(status.Pending) > 0 {
		cmd.Printf("Pending migrations: %v\n", status.Pending)
	} else {
		cmd.Println("Schema is up to date")
	}
	return nil
}
