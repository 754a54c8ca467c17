package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var (
	usersHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")).
				Padding(0, 1)

	usersTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List and manage platform users",
	Long: `User management.

Admins list every platform user; managers and employees list their
organization's members. Managers can additionally remove members.`,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users visible to your role",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := env.requireAccess(cmd.Context(), "/users")
		if err != nil {
			return err
		}

		var (
			users []internal.User
			title string
		)
		if profile.IsAdmin() {
			users, err = env.client.AdminUsers(cmd.Context())
			title = "User Management"
		} else {
			users, err = env.client.OrganizationMembers(cmd.Context())
			title = "Organization Members"
		}
		if err != nil {
			return fmt.Errorf("failed to fetch users: %w", err)
		}

		fmt.Println(usersHeaderStyle.Render(fmt.Sprintf("◉ %s — %d user(s)", title, len(users))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		if profile.IsAdmin() {
			_, _ = fmt.Fprintln(w, usersTitleStyle.Render("Name")+"\t"+
				usersTitleStyle.Render("Email")+"\t"+
				usersTitleStyle.Render("Organization")+"\t"+
				usersTitleStyle.Render("Cert. Body")+"\t"+
				usersTitleStyle.Render("Role")+"\t")
			for _, u := range users {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
					u.FullName, u.Email, u.Organization, u.CertificationBody, u.Role)
			}
		} else {
			_, _ = fmt.Fprintln(w, usersTitleStyle.Render("Name")+"\t"+
				usersTitleStyle.Render("Email")+"\t"+
				usersTitleStyle.Render("Role")+"\t"+
				usersTitleStyle.Render("ID")+"\t")
			for _, u := range users {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", u.FullName, u.Email, u.Role, u.ID)
			}
		}
		_ = w.Flush()
		return nil
	},
}

var usersRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Remove a member from your organization (manager)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := env.requireAccess(cmd.Context(), "/organization/users")
		if err != nil {
			return err
		}
		if profile.Role != internal.RoleManager {
			return fmt.Errorf("only managers can remove organization members")
		}

		if err := env.client.RemoveOrganizationMember(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		fmt.Println(successStyle.Render("✓ User removed from the organization"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersRemoveCmd)
}
