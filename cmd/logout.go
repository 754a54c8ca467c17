package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored access token",
	Long: `Log out of CertiPro.

The local token is always cleared; server-side invalidation is attempted
but a failure there does not keep you logged in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if env.store.Token() != "" {
			if err := env.client.Logout(cmd.Context()); err != nil {
				internal.LogDebug("Server-side logout failed: %v", err)
			}
		}

		if err := env.store.ClearToken(); err != nil {
			return fmt.Errorf("failed to clear token: %w", err)
		}

		fmt.Println(successStyle.Render("✓ Logged out"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
