package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against the CertiPro backend",
	Long: `Log in with your CertiPro credentials.

The issued access token is stored locally and attached to every
subsequent request until you log out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		email := loginEmail
		if email == "" {
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		password := loginPassword
		if password == "" {
			password, err = promptLine("Password: ")
			if err != nil {
				return err
			}
		}

		token, err := env.client.Login(cmd.Context(), email, password)
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Login failed:"), err)
			return fmt.Errorf("login failed: %w", err)
		}

		if err := env.store.SetToken(token); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		// Force profile refresh so role problems surface now, not later
		profile := env.resolveProfile(cmd.Context())
		if profile == nil {
			fmt.Println(errorStyle.Render("✗ Logged in, but the profile could not be resolved"))
			return fmt.Errorf("profile resolution failed")
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Logged in as %s (%s)", profile.Name, profile.Role)))
		return nil
	},
}

func promptLine(prompt string) (string, error) {
	fmt.Print(infoStyle.Render(prompt))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
}
