package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"coursekit/internal/infrastructure/config"
	"coursekit/internal/infrastructure/database"
	"coursekit/internal/infrastructure/migration"
	"coursekit/internal/infrastructure/persistence/seeds"
	"coursekit/internal/shared/logger"
)

var (
	env   string
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply, roll back, inspect status, and seed demo data.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")
	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo course catalog",
		RunE:  runSeed,
	}
}

func setup() error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	return nil
}

func scriptsPath() (string, error) {
	return filepath.Abs("./internal/infrastructure/migration/scripts")
}

func runUp(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	path, err := scriptsPath()
	if err != nil {
		return err
	}

	strategy := migration.NewGolangMigrateStrategy(path)
	if err := strategy.Migrate(database.Get()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("migrations applied")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	path, err := scriptsPath()
	if err != nil {
		return err
	}

	strategy, ok := migration.NewGolangMigrateStrategy(path).(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("unexpected strategy type")
	}
	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	path, err := scriptsPath()
	if err != nil {
		return err
	}

	strategy, ok := migration.NewGolangMigrateStrategy(path).(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("unexpected strategy type")
	}

	version, dirty, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get version: %w", err)
	}

	logger.Info("migration status", "version", version, "dirty", dirty)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if err := setup(); err != nil {
		return err
	}
	defer database.Close()

	if err := seeds.SeedCatalog(database.Get()); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	logger.Info("catalog seeded")
	return nil
}
