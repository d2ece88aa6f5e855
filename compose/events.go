package compose

// EventType discriminates the streaming event union.
type EventType string

const (
	// EventChat carries a fragment of conversational text.
	EventChat EventType = "chat"
	// EventCode carries one completed file block.
	EventCode EventType = "code"
	// EventDone marks successful stream completion.
	EventDone EventType = "done"
	// EventError marks stream failure. Terminal; no Done follows.
	EventError EventType = "error"
)

// Event is one typed parser emission. Exactly one Done or Error terminates a
// stream; any number of Chat/Code events precede it, in recognition order.
type Event struct {
	Type    EventType `json:"type"`
	Text    string    `json:"text,omitempty"`
	Path    string    `json:"path,omitempty"`
	Content string    `json:"content,omitempty"`
	Message string    `json:"message,omitempty"`
}

// FileBlock is one generated file extracted from a response.
type FileBlock struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ParsedResponse is the batch-mode parse result. Raw is the untouched model
// output; Conversation is Raw with every well-formed file block removed and
// blank-line runs collapsed; Files preserves textual appearance order,
// duplicate paths included.
type ParsedResponse struct {
	Conversation string      `json:"conversation"`
	Files        []FileBlock `json:"files"`
	Raw          string      `json:"raw"`
}
