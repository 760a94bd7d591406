package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yukikurage/workout-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and lookup indexes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := database.MigrateDatabase(db)
		if err != nil {
			return err
		}

		color.Green("✓ Schema up to date")
		if len(created) == 0 {
			fmt.Println(color.New(color.Faint).Sprint("  no new indexes"))
			return nil
		}
		for _, name := range created {
			fmt.Printf("  + %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
