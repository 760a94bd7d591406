package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/config"
	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
	db  *gorm.DB
)

var rootCmd = &cobra.Command{
	Use:   "workoutctl",
	Short: "Operator tooling for the workout API",
	Long: `workoutctl runs maintenance tasks against the workout API database.

It reads the same WORKOUT_* environment (and optional .env file) as the server.

EXAMPLES:

  workoutctl migrate                          # Create tables and lookup indexes
  workoutctl seed --file configs/catalog.yaml # Load the exercise catalog
  workoutctl token --user alice               # Mint a bearer token for local testing`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Options{
			ServiceName: "workoutctl",
			Level:       cfg.App.LogLevel,
			Format:      "console",
		})

		db, err = database.Connect(cfg.DB, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db == nil {
			return nil
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	},
}
