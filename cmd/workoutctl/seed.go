package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/repository"
	"github.com/yukikurage/workout-api/internal/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference catalog from a YAML file",
	Long: `Load goal types, exercise types, units and exercises from a YAML file.

Rows are matched by id, so running seed again updates existing rows instead
of duplicating them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}

		summary, err := seed.Apply(repository.NewStore(db), catalog)
		if err != nil {
			return err
		}

		color.Green("✓ Seeded catalog from %s", seedFile)
		faint := color.New(color.Faint)
		fmt.Printf("  %s %d\n", faint.Sprint("goal types:    "), summary.GoalTypes)
		fmt.Printf("  %s %d\n", faint.Sprint("exercise types:"), summary.ExerciseTypes)
		fmt.Printf("  %s %d\n", faint.Sprint("exercise units:"), summary.ExerciseUnits)
		fmt.Printf("  %s %d\n", faint.Sprint("exercises:     "), summary.Exercises)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "configs/catalog.yaml", "catalog YAML file")
	rootCmd.AddCommand(seedCmd)
}
