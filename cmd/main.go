package main

import (
	"os"

	"docpool/cmd/bootstrap"
	"docpool/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "docpool",
		Short:         "Doctor directory service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", ".env", "path to an optional .env file")

	root.AddCommand(newServeCmd(&configPath), newMigrateCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := bootstrap.LoadConfig(*configPath)
			if err != nil {
				logrus.Errorf("Failed to initialize application: %v", err)
				return err
			}

			// Initialize application with all dependencies
			app, err := bootstrap.New(cfg)
			if err != nil {
				logrus.Errorf("Failed to initialize application: %v", err)
				return err
			}

			// Run the application
			app.Run()
			return nil
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(*configPath, func(m *database.Migrator) error { return m.Up() })
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations (all of them unless --steps is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(*configPath, func(m *database.Migrator) error { return m.Down(steps) })
		},
	}
	down.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func runMigration(configPath string, fn func(m *database.Migrator) error) error {
	cfg, err := bootstrap.LoadConfig(configPath)
	if err != nil {
		logrus.Errorf("Failed to load configuration: %v", err)
		return err
	}

	if err := bootstrap.Migrate(cfg, fn); err != nil {
		logrus.Errorf("Migration failed: %v", err)
		return err
	}
	return nil
}
