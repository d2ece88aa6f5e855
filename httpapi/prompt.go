package httpapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// basePrompt instructs the model to wrap every generated file in the marker
// grammar the parser recognizes.
const basePrompt = `You are a UI engineer generating React component files.

When your reply includes source files, wrap each one exactly as:
<file path="relative/path.tsx">file contents</file>

Write any explanation as plain prose outside the file markers. Emit complete
files, never fragments, and keep paths stable across revisions of the same
file.`

// buildSystemPrompt assembles the system message: base instructions plus the
// client's current composition so the model edits rather than regenerates.
func buildSystemPrompt(comp *Composition, selectedInstanceID string) string {
	var b strings.Builder
	b.WriteString(basePrompt)

	if comp != nil && len(comp.Instances) > 0 {
		b.WriteString("\n\nThe canvas currently contains these component instances:\n")
		data, err := json.MarshalIndent(comp.Instances, "", "  ")
		if err == nil {
			b.Write(data)
		}
	}

	if selectedInstanceID != "" {
		fmt.Fprintf(&b, "\n\nThe user has selected instance %q; scope changes to it unless asked otherwise.", selectedInstanceID)
	}

	return b.String()
}

// buildHistory produces the provider message list: system prompt, prior room
// history in chronological order, then the new user message.
func buildHistory(system string, past []StoredMessage, userMessage string) []core.Message {
	msgs := make([]core.Message, 0, len(past)+2)
	msgs = append(msgs, core.Message{Role: core.RoleSystem, Content: system})

	for _, m := range past {
		msgs = append(msgs, core.Message{Role: m.Role, Content: m.Content})
	}

	msgs = append(msgs, core.Message{Role: core.RoleUser, Content: userMessage})
	return msgs
}
