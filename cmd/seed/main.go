package main

import (
	"context"
	"fmt"
	"os"

	"feiyi/internal/repository"
	"feiyi/internal/seed"
	"feiyi/internal/service"
	"feiyi/pkg/config"
	"feiyi/pkg/database"
	"feiyi/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Load the sample heritage catalog into the database",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		return withStore(cmd.Context(), func(ctx context.Context, _ *config.Config, db *database.DB, log *zap.Logger) error {
			seeder := seed.NewSeeder(
				repository.NewItemRepository(db, log),
				repository.NewKnowledgeRepository(db, log),
				log,
			)
			res, err := seeder.Run(ctx, force)
			if err != nil {
				return err
			}
			fmt.Printf("items: %d created, %d updated, %d skipped\n", res.ItemsCreated, res.ItemsUpdated, res.ItemsSkipped)
			fmt.Printf("knowledge: %d created\n", res.KnowledgeCreated)
			return nil
		})
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete chat interactions older than the given number of days",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("older-than-days")

		return withStore(cmd.Context(), func(ctx context.Context, cfg *config.Config, db *database.DB, log *zap.Logger) error {
			if !cmd.Flags().Changed("older-than-days") {
				days = cfg.Retention.InteractionDays
			}
			interactions := service.NewInteractionService(repository.NewInteractionRepository(db, log), log)
			n, err := interactions.Prune(ctx, days)
			if err != nil {
				return err
			}
			fmt.Printf("pruned %d interactions\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.Flags().Bool("force", false, "overwrite items that already exist")

	pruneCmd.Flags().Int("older-than-days", 0, "age threshold in days (default INTERACTION_RETENTION_DAYS)")
	rootCmd.AddCommand(pruneCmd)
}

// withStore loads config, opens the database and hands both to fn.
func withStore(ctx context.Context, fn func(context.Context, *config.Config, *database.DB, *zap.Logger) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.File); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	db, err := database.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return fn(ctx, cfg, db, appLogger)
}
