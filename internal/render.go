package internal

import (
	"strings"
)

// Segment is one run of content, either plain or emphasized
type Segment struct {
	Text string
	Bold bool
}

// SplitBoldSegments splits markdown-style **bold** spans out of content.
// Pure display-time transform: the stored message keeps its markers.
// Unterminated markers are left as literal text.
func SplitBoldSegments(content string) []Segment {
	var segments []Segment
	rest := content

	for {
		open := strings.Index(rest, "**")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open+2:], "**")
		if end < 0 {
			break
		}

		if open > 0 {
			segments = append(segments, Segment{Text: rest[:open]})
		}
		segments = append(segments, Segment{Text: rest[open+2 : open+2+end], Bold: true})
		rest = rest[open+2+end+2:]
	}

	if rest != "" {
		segments = append(segments, Segment{Text: rest})
	}
	return segments
}

// RenderEmphasis renders content with bold spans passed through emphasize
func RenderEmphasis(content string, emphasize func(string) string) string {
	var b strings.Builder
	for _, seg := range SplitBoldSegments(content) {
		if seg.Bold {
			b.WriteString(emphasize(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}
