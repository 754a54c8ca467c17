package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var (
	createOrgName     string
	createCBName      string
	createDescription string
	createAddress     string
	createEmail       string
	createPhone       string

	reviewComment string
)

var (
	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	approvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	rejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	unknownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Bold(true)

	requestNameStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))

	fieldKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Organization and certification-body request workflows",
	Long: `Work with creation requests.

What you see depends on your role: admins review all requests across both
pipelines, organization and certification-body members see their own, and
guests submit new ones.`,
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List requests visible to your role",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := env.requireAccess(cmd.Context(), "/dashboard")
		if err != nil {
			return err
		}
		if profile.IsGuest() {
			fmt.Println(infoStyle.Render("Guests have no request list. Use `certipro requests create` to submit one."))
			return nil
		}

		workflow := internal.NewWorkflow(env.client, profile)
		if err := workflow.Refresh(cmd.Context()); err != nil {
			return err
		}

		pending, approved, rejected, unknown := workflow.Buckets()
		if len(workflow.Requests()) == 0 {
			fmt.Println(infoStyle.Render("No requests found"))
			return nil
		}

		printBucket(pendingStyle.Render("⏳ Pending"), pending)
		printBucket(approvedStyle.Render("✓ Approved"), approved)
		printBucket(rejectedStyle.Render("✗ Rejected"), rejected)
		if len(unknown) > 0 {
			printBucket(unknownStyle.Render("? Unrecognized status"), unknown)
		}
		return nil
	},
}

func printBucket(header string, requests []internal.Request) {
	if len(requests) == 0 {
		return
	}
	fmt.Println(header)
	for _, r := range requests {
		printRequest(r)
	}
	fmt.Println()
}

// printRequest renders one request with its per-variant fields. Internal
// ids and bookkeeping timestamps are not part of the display.
func printRequest(r internal.Request) {
	fmt.Printf("  %s  %s\n", requestNameStyle.Render(r.Name()), chatMetaStyle.Render(r.ID))
	printField("Type", string(r.Type))
	printField("Status", r.Status.String())

	switch r.Type {
	case internal.TypeCertificationBody:
		if d := r.CertificationBody; d != nil {
			printField("Address", d.Address)
			printField("Contact email", d.ContactEmail)
			printField("Contact phone", d.ContactPhone)
			printField("Admin comment", d.AdminComment)
			printField("Created", d.CreatedAt)
		}
	default:
		if d := r.Organization; d != nil {
			printField("Description", d.Description)
			printField("Address", d.Address)
			printField("Contact email", d.ContactEmail)
			printField("Contact phone", d.ContactPhone)
			printField("Admin comment", d.AdminComment)
			printField("Created", d.CreatedAt)
		}
	}
}

func printField(key, value string) {
	if value == "" {
		return
	}
	fmt.Printf("    %s %s\n", fieldKeyStyle.Render(key+":"), fieldValueStyle.Render(value))
}

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new organization or certification-body request",
	Long: `Submit a creation request.

Providing --cb-name selects the certification-body request shape and the
organization fields are ignored; otherwise an organization request is
submitted from --org-name and --description.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		profile, err := env.requireAccess(cmd.Context(), "/dashboard")
		if err != nil {
			return err
		}

		form := internal.NewRequestForm{
			OrganizationName:      createOrgName,
			CertificationBodyName: createCBName,
			Description:           createDescription,
			Address:               createAddress,
			ContactEmail:          createEmail,
			ContactPhone:          createPhone,
		}

		workflow := internal.NewWorkflow(env.client, profile)
		typ, err := workflow.Submit(cmd.Context(), form)
		if err != nil {
			return err
		}

		fmt.Println(successStyle.Render(fmt.Sprintf("✓ %s request submitted for review", typ)))
		return nil
	},
}

var requestsApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a pending request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewRequest(cmd, args[0], "approve")
	},
}

var requestsRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a pending request (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reviewRequest(cmd, args[0], "reject")
	},
}

func reviewRequest(cmd *cobra.Command, id, action string) error {
	env, err := newAppEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	profile, err := env.requireAccess(cmd.Context(), "/users")
	if err != nil {
		return err
	}
	if !profile.IsAdmin() {
		return fmt.Errorf("only admins can %s requests", action)
	}

	workflow := internal.NewWorkflow(env.client, profile)
	if err := workflow.Refresh(cmd.Context()); err != nil {
		return err
	}

	workflow.Select(id, action)
	if err := workflow.Confirm(cmd.Context(), reviewComment); err != nil {
		return err
	}

	past := "approved"
	if action == "reject" {
		past = "rejected"
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Request %s", past)))
	pending, _, _, _ := workflow.Buckets()
	fmt.Println(infoStyle.Render(fmt.Sprintf("%d request(s) still pending", len(pending))))
	return nil
}

func init() {
	rootCmd.AddCommand(requestsCmd)
	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsCreateCmd)
	requestsCmd.AddCommand(requestsApproveCmd)
	requestsCmd.AddCommand(requestsRejectCmd)

	requestsCreateCmd.Flags().StringVar(&createOrgName, "org-name", "", "Organization name")
	requestsCreateCmd.Flags().StringVar(&createCBName, "cb-name", "", "Certification body name")
	requestsCreateCmd.Flags().StringVar(&createDescription, "description", "", "Organization description")
	requestsCreateCmd.Flags().StringVar(&createAddress, "address", "", "Address")
	requestsCreateCmd.Flags().StringVar(&createEmail, "contact-email", "", "Contact email")
	requestsCreateCmd.Flags().StringVar(&createPhone, "contact-phone", "", "Contact phone")

	requestsApproveCmd.Flags().StringVar(&reviewComment, "comment", "", "Admin comment")
	requestsRejectCmd.Flags().StringVar(&reviewComment, "comment", "", "Admin comment")
}
