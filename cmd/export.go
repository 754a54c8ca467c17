package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
	"github.com/certipro/certipro-cli/internal/export"
)

var (
	exportFormat string
	exportOutput string
	exportRemote bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the chat transcript",
	Long: `Export your chat session transcript.

By default the locally persisted transcript is exported; --remote fetches
the authoritative history from the server first. Formats: jsonl, md,
yaml, json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		session, err := env.store.LoadSession()
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil || (len(session.Messages) == 0 && session.SessionID == "") {
			fmt.Println(infoStyle.Render("No chat session to export"))
			return nil
		}

		if exportRemote && session.SessionID != "" {
			messages, err := env.client.ChatHistory(cmd.Context(), session.SessionID)
			if err != nil {
				internal.LogWarn("History fetch failed, exporting local transcript: %v", err)
			} else {
				session.Messages = messages
			}
		}

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}

		if err := exporter.Export(session, out); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		if exportOutput != "" {
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Exported %d message(s) to %s", len(session.Messages), exportOutput)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (stdout if omitted)")
	exportCmd.Flags().BoolVar(&exportRemote, "remote", false, "Fetch server history before exporting")
}
