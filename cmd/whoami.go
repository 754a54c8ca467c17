package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the resolved user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		profile := env.resolveProfile(cmd.Context())
		if profile == nil {
			fmt.Println(infoStyle.Render("Not logged in. Run `certipro login`."))
			return nil
		}

		fmt.Println(labelStyle.Render("Name: ") + valueStyle.Render(profile.Name))
		fmt.Println(labelStyle.Render("Role: ") + valueStyle.Render(profile.Role))
		if profile.OrganizationName != "" {
			fmt.Println(labelStyle.Render("Organization: ") + valueStyle.Render(profile.OrganizationName))
		}
		if profile.CertificationBodyName != "" {
			fmt.Println(labelStyle.Render("Certification body: ") + valueStyle.Render(profile.CertificationBodyName))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
