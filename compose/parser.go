package compose

import (
	"regexp"
	"strings"
)

// blankRuns matches runs of three or more newlines, with optional horizontal
// whitespace between them, left behind when file blocks are cut out.
var blankRuns = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

// Parse runs the shared grammar over a complete string and returns the batch
// result. Files appear in strict textual order; an unterminated block stays
// in the conversation as plain text.
func Parse(raw string) ParsedResponse {
	s := NewScanner()
	events := s.Write(raw)
	events = append(events, s.Finish()...)

	var conversation strings.Builder
	var files []FileBlock

	for _, ev := range events {
		switch ev.Type {
		case EventChat:
			conversation.WriteString(ev.Text)
		case EventCode:
			files = append(files, FileBlock{Path: ev.Path, Content: ev.Content})
		}
	}

	return ParsedResponse{
		Conversation: collapseBlankLines(conversation.String()),
		Files:        files,
		Raw:          raw,
	}
}

// collapseBlankLines reduces the blank-line runs produced by block removal to
// a single paragraph break and trims the outer whitespace.
func collapseBlankLines(s string) string {
	return strings.TrimSpace(blankRuns.ReplaceAllString(s, "\n\n"))
}
