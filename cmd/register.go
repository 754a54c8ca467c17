package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal/api"
)

var (
	registerEmail      string
	registerPassword   string
	registerFullName   string
	registerInvitation string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new CertiPro account",
	Long: `Register a new account.

Without an invitation token you join as a guest and can request the
creation of an organization or certification body. With a token from an
organization invitation you join that organization with the invited role.

A verification email is sent after registration; confirm it with
` + "`certipro verify-email <token>`" + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		email := registerEmail
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		fullName := registerFullName
		if fullName == "" {
			if fullName, err = promptLine("Full name: "); err != nil {
				return err
			}
		}
		password := registerPassword
		if password == "" {
			if password, err = promptLine("Password: "); err != nil {
				return err
			}
		}

		err = env.client.Register(cmd.Context(), api.RegisterParams{
			Email:           email,
			Password:        password,
			FullName:        fullName,
			InvitationToken: registerInvitation,
		})
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Registration failed:"), err)
			return fmt.Errorf("registration failed: %w", err)
		}

		fmt.Println(successStyle.Render("✓ Registered"))
		fmt.Println(infoStyle.Render("Check your inbox and run `certipro verify-email <token>` to activate the account."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted if omitted)")
	registerCmd.Flags().StringVar(&registerFullName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerInvitation, "invitation", "", "Invitation token from an organization invite")
}
