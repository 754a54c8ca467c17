package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify-email <token>",
	Short: "Confirm a registration email token",
	Long: `Confirm the email verification token from your registration email.

On success the issued access token is stored, replacing any previous
login, and the account is ready to use.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		token, err := env.client.VerifyEmail(cmd.Context(), args[0])
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Verification failed:"), err)
			return fmt.Errorf("email verification failed: %w", err)
		}

		// A fresh identity invalidates local chat state from any prior login
		if err := env.store.ClearSession(); err != nil {
			return fmt.Errorf("failed to clear local session: %w", err)
		}
		if err := env.store.SetToken(token); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		fmt.Println(successStyle.Render("✓ Email verified, you are now logged in"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
