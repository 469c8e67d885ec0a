package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"homequote.backend/internal/config"
	"homequote.backend/internal/infrastructure/migrations"
	"homequote.backend/pkg/logger"
)

type migrator interface {
	Up() error
	Down(steps int) error
	Version() (uint, bool, error)
	Close() error
}

var newMigrator = func(databaseURL string) (migrator, error) {
	return migrations.NewRunner(databaseURL, logger.GetLogger())
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	logger.Init(cfg.Server.Env)
	defer logger.Sync()

	if err := newRootCmd(cfg.Database.URL()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(databaseURL string) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the database schema",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", databaseURL, "PostgreSQL connection URL")

	withMigrator := func(run func(cmd *cobra.Command, m migrator, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, err := newMigrator(databaseURL)
			if err != nil {
				return err
			}
			defer m.Close()
			return run(cmd, m, args)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m migrator, _ []string) error {
			if err := m.Up(); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			logger.GetLogger().Info("migrations applied")
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withMigrator(func(cmd *cobra.Command, m migrator, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid steps %q: %w", args[0], err)
				}
				steps = n
			}
			if err := m.Down(steps); err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			logger.GetLogger().Info("migrations rolled back", zap.Int("steps", steps))
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m migrator, _ []string) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		}),
	})

	return root
}
