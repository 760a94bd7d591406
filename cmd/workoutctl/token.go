package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/repository"
	"github.com/yukikurage/workout-api/internal/services"
)

var tokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for an existing user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, err := auth.NewTokenService(cfg.JWT)
		if err != nil {
			return err
		}
		authService := services.NewAuthService(repository.NewStore(db), tokens)

		user, err := authService.GetUserByUsername(tokenUser)
		if err != nil {
			return fmt.Errorf("user %q: %w", tokenUser, err)
		}
		token, expiresAt, err := authService.IssueToken(user)
		if err != nil {
			return err
		}

		color.Green("✓ Token for %s (id %d)", user.Username, user.ID)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("expires:"), expiresAt.Format(time.RFC3339))
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "username to issue the token for")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
