package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// statusCmd checks local state and backend reachability
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check configuration, local state and backend connectivity",
	Long: `Check the health of the certipro client by verifying:
  • Config file and backend address
  • Local state store accessibility
  • Stored login and chat session
  • Backend reachability and profile resolution

Useful for debugging connection or login problems.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 CertiPro Client Status"))
		fmt.Println()

		env, err := newAppEnv()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to initialize:"), err)
			return err
		}
		defer env.Close()

		fmt.Println(infoStyle.Render("Backend: ") + env.cfg.APIBaseURL)

		if env.store.Token() == "" {
			fmt.Println(warningStyle.Render("○ No stored login"))
		} else {
			fmt.Println(successStyle.Render("✓ Access token present"))
		}

		session, err := env.store.LoadSession()
		switch {
		case err != nil:
			fmt.Println(warningStyle.Render("○ Stored chat session unreadable"))
		case session == nil:
			fmt.Println(infoStyle.Render("○ No stored chat session"))
		default:
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Chat session (%d message(s))", len(session.Messages))))
		}

		profile := env.resolveProfile(cmd.Context())
		if profile == nil {
			fmt.Println(warningStyle.Render("○ Profile not resolved (logged out or backend unreachable)"))
			return nil
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Logged in as %s (%s)", profile.Name, profile.Role)))
		items := internal.ItemsFor(profile.Role)
		fmt.Println(infoStyle.Render(fmt.Sprintf("%d navigation item(s) visible", len(items))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
