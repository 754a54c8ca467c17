package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	inviteEmail string
	inviteRole  string
)

var invitationsCmd = &cobra.Command{
	Use:   "invitations",
	Short: "Manage organization invitations (manager)",
}

var invitationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your organization's invitations",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if _, err := env.requireAccess(cmd.Context(), "/organization/invitations"); err != nil {
			return err
		}

		invitations, err := env.client.Invitations(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch invitations: %w", err)
		}

		if len(invitations) == 0 {
			fmt.Println(infoStyle.Render("No invitations found"))
			return nil
		}

		fmt.Println(usersHeaderStyle.Render(fmt.Sprintf("✉ %d invitation(s)", len(invitations))))
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, usersTitleStyle.Render("Email")+"\t"+
			usersTitleStyle.Render("Role")+"\t"+
			usersTitleStyle.Render("Status")+"\t"+
			usersTitleStyle.Render("Expires")+"\t"+
			usersTitleStyle.Render("ID")+"\t")
		for _, inv := range invitations {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
				inv.Email, inv.Role, inv.Status, inv.ExpiresAt, inv.ID)
		}
		_ = w.Flush()
		return nil
	},
}

var invitationsSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Invite someone into your organization",
	Long: `Send an invitation email.

The invited role must be "employee" or "manager"; the admin role cannot
be assigned through invitations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if _, err := env.requireAccess(cmd.Context(), "/organization/invitations"); err != nil {
			return err
		}

		if inviteEmail == "" || inviteRole == "" {
			return fmt.Errorf("both --email and --role are required")
		}
		role := strings.ToLower(inviteRole)
		if role != "employee" && role != "manager" {
			return fmt.Errorf("invalid role %q (allowed: employee, manager)", inviteRole)
		}

		if err := env.client.SendInvitation(cmd.Context(), inviteEmail, role); err != nil {
			return fmt.Errorf("failed to send invitation: %w", err)
		}

		fmt.Println(successStyle.Render("✓ Invitation sent to " + inviteEmail))
		return nil
	},
}

var invitationsRevokeCmd = &cobra.Command{
	Use:   "revoke <invitation-id>",
	Short: "Revoke a pending invitation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if _, err := env.requireAccess(cmd.Context(), "/organization/invitations"); err != nil {
			return err
		}

		if err := env.client.RevokeInvitation(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to revoke invitation: %w", err)
		}

		fmt.Println(successStyle.Render("✓ Invitation revoked"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invitationsCmd)
	invitationsCmd.AddCommand(invitationsListCmd)
	invitationsCmd.AddCommand(invitationsSendCmd)
	invitationsCmd.AddCommand(invitationsRevokeCmd)

	invitationsSendCmd.Flags().StringVar(&inviteEmail, "email", "", "Email address to invite")
	invitationsSendCmd.Flags().StringVar(&inviteRole, "role", "", "Role for the invitee (employee or manager)")
}
