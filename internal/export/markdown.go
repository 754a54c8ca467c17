package export

import (
	"fmt"
	"io"

	"github.com/certipro/certipro-cli/internal"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export writes the session as a Markdown document. Assistant content keeps
// its markdown bold markers, so no escaping happens here.
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	if session.SessionID != "" {
		_, _ = fmt.Fprintf(w, "# Chat Session %s\n\n", session.SessionID)
	} else {
		_, _ = fmt.Fprintf(w, "# Chat Session\n\n")
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", msg.Role, msg.Content)

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
