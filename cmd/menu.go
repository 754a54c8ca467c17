package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var menuExpand []string

var (
	menuHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	menuGroupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	menuHrefStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the views available to your role",
	Long: `Display the navigation menu for your role.

Grouped entries are collapsed by default; pass --expand <label> to open a
group. Without a login the guest menu is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		role := internal.RoleGuest
		profile := env.resolveProfile(cmd.Context())
		if profile != nil {
			role = profile.Role
		}

		state := internal.NewNavState()
		for _, label := range menuExpand {
			state.Toggle(label)
		}

		fmt.Println(menuHeaderStyle.Render(fmt.Sprintf("☰ CertiPro — %s", role)))
		fmt.Println()
		for _, item := range internal.ItemsFor(role) {
			renderNavItem(item, state)
		}
		return nil
	},
}

func renderNavItem(item internal.NavItem, state *internal.NavState) {
	if !item.IsGroup() {
		fmt.Printf("  %s %s  %s\n",
			item.Icon,
			menuItemStyle.Render(item.Label),
			menuHrefStyle.Render(item.Href))
		return
	}

	marker := "▸"
	if state.Expanded(item.Label) {
		marker = "▾"
	}
	fmt.Printf("  %s %s %s\n", item.Icon, menuGroupStyle.Render(item.Label), marker)

	if state.Expanded(item.Label) {
		for _, child := range item.Children {
			fmt.Printf("    %s %s  %s\n",
				child.Icon,
				menuItemStyle.Render(child.Label),
				menuHrefStyle.Render(child.Href))
		}
	}
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().StringSliceVar(&menuExpand, "expand", nil, "Group labels to expand")
}
