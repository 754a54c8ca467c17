package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/certipro/certipro-cli/internal"
)

var chatAsk string

var (
	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true)

	chatBoldStyle = lipgloss.NewStyle().
			Bold(true)

	chatMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the certification assistant",
	Long: `Open a chat with the ISO certification assistant.

The conversation is resumed from your last session and streamed back
incrementally. Use --ask to submit one question directly, e.g. the
"Tell me about ISO 9001" handoff from the standards view; this fires
only when the transcript is empty.

Type "exit" or press Ctrl-D to leave the interactive prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newAppEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if _, err := env.requireAccess(cmd.Context(), "/chat"); err != nil {
			return err
		}

		session := internal.NewChatSession(env.client, env.store)
		session.Hydrate(cmd.Context())

		if len(session.Messages()) > 0 {
			fmt.Println(chatMetaStyle.Render(fmt.Sprintf("Resumed session with %d message(s)", len(session.Messages()))))
			fmt.Println()
			for _, msg := range session.Messages() {
				printMessage(msg)
			}
		}

		if chatAsk != "" {
			if len(session.Messages()) > 0 {
				fmt.Println(chatMetaStyle.Render("Transcript is not empty, ignoring --ask"))
			} else if err := sendAndStream(cmd, session, chatAsk, true); err != nil {
				return err
			}
		}

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print(userMessageStyle.Render("you> "))
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return nil
			}
			line = strings.TrimSpace(line)
			if line == "exit" || line == "quit" {
				return nil
			}
			if line == "" {
				continue
			}

			if err := sendAndStream(cmd, session, line, false); err != nil {
				if errors.Is(err, internal.ErrStreamBusy) || errors.Is(err, internal.ErrEmptyMessage) {
					fmt.Println(errorStyle.Render("✗ " + err.Error()))
					continue
				}
				fmt.Println(errorStyle.Render("✗ Failed to send message: " + err.Error()))
			}
		}
	},
}

// sendAndStream submits one message and prints fragments as they arrive.
// handoff routes through the one-shot auto-send path.
func sendAndStream(cmd *cobra.Command, session *internal.ChatSession, text string, handoff bool) error {
	if handoff {
		fmt.Println(userMessageStyle.Render("you> ") + text)
	}
	fmt.Print(assistantMessageStyle.Render("assistant> "))

	printed := 0
	onUpdate := func(content string) {
		if len(content) > printed {
			fmt.Print(content[printed:])
			printed = len(content)
		}
	}

	var err error
	if handoff {
		err = session.Handoff(cmd.Context(), text, onUpdate)
	} else {
		err = session.Send(cmd.Context(), text, onUpdate)
	}
	fmt.Println()
	fmt.Println()
	return err
}

func printMessage(msg internal.Message) {
	content := internal.RenderEmphasis(msg.Content, func(s string) string { return chatBoldStyle.Render(s) })
	if msg.Role == "user" {
		fmt.Println(userMessageStyle.Render("you> ") + content)
	} else {
		fmt.Println(assistantMessageStyle.Render("assistant> ") + content)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatAsk, "ask", "", "Submit one message immediately (empty transcript only)")
}
