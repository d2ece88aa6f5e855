// Package compose parses model output that interleaves conversational prose
// with file blocks of the form <file path="P">content</file>. It supports a
// batch mode over a finished string and a streaming mode that emits typed
// events as fragments arrive, regardless of where fragment boundaries fall
// relative to the markers.
package compose

import "strings"

const (
	openMarkerPrefix = `<file path="`
	closeMarker      = `</file>`
)

type scanState int

const (
	stateText scanState = iota
	stateFile
)

// Scanner is the incremental two-state parser. Feed fragments with Write and
// flush the tail with Finish. A Scanner is single-use and not safe for
// concurrent access; each response stream owns its own.
type Scanner struct {
	state scanState

	// pending holds input not yet resolved into an event: in stateText a
	// possible marker prefix being withheld, in stateFile the file content
	// accumulated so far.
	pending string

	// openRaw is the verbatim text of the current open marker, kept so an
	// unterminated block can be re-emitted as plain text at end of input.
	openRaw string

	// path is the current file block's path attribute.
	path string
}

// NewScanner returns a Scanner in the text state.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Write feeds one fragment and returns the events recognized so far, in
// order. Text that could still turn out to be the prefix of a marker is
// withheld, so no Chat event ever contains a partial marker.
func (s *Scanner) Write(fragment string) []Event {
	if fragment == "" {
		return nil
	}
	s.pending += fragment

	var events []Event
	for {
		switch s.state {
		case stateText:
			emit, progressed := s.scanText()
			if emit != "" {
				events = append(events, Event{Type: EventChat, Text: emit})
			}
			if !progressed {
				return events
			}

		case stateFile:
			idx := strings.Index(s.pending, closeMarker)
			if idx < 0 {
				return events
			}
			events = append(events, Event{Type: EventCode, Path: s.path, Content: s.pending[:idx]})
			s.pending = s.pending[idx+len(closeMarker):]
			s.openRaw = ""
			s.path = ""
			s.state = stateText
		}
	}
}

// scanText consumes pending text up to the next complete or potential open
// marker. It returns the text that is safe to emit and whether the state
// machine made progress that warrants another loop iteration.
func (s *Scanner) scanText() (emit string, progressed bool) {
	search := s.pending
	base := 0
	for {
		rel := strings.IndexByte(search[base:], '<')
		if rel < 0 {
			// No marker candidate anywhere; everything is plain text.
			emit = s.pending
			s.pending = ""
			return emit, false
		}
		i := base + rel

		path, length, partial := matchOpenMarker(search[i:])
		if partial {
			// Could still become a marker; withhold from here on.
			emit = s.pending[:i]
			s.pending = s.pending[i:]
			return emit, false
		}
		if length > 0 {
			// Complete open marker.
			emit = s.pending[:i]
			s.openRaw = s.pending[i : i+length]
			s.path = path
			s.pending = s.pending[i+length:]
			s.state = stateFile
			return emit, true
		}

		// A '<' that is provably not a marker; keep scanning past it.
		base = i + 1
	}
}

// matchOpenMarker inspects s, which starts at a '<', for an open marker.
// It returns the path and total marker length on a complete match, or
// partial=true when s is a viable prefix that needs more input to decide.
func matchOpenMarker(s string) (path string, length int, partial bool) {
	n := len(s)
	if n < len(openMarkerPrefix) {
		if s == openMarkerPrefix[:n] {
			return "", 0, true
		}
		return "", 0, false
	}
	if s[:len(openMarkerPrefix)] != openMarkerPrefix {
		return "", 0, false
	}

	rest := s[len(openMarkerPrefix):]
	q := strings.IndexByte(rest, '"')
	if q < 0 {
		// Path attribute still streaming in.
		return "", 0, true
	}
	if q+1 >= len(rest) {
		// Closing quote seen, '>' not yet.
		return "", 0, true
	}
	if rest[q+1] != '>' {
		return "", 0, false
	}

	return rest[:q], len(openMarkerPrefix) + q + 2, false
}

// Finish flushes whatever remains once input has ended. An open marker with
// no matching close is not promoted to a file block: the raw marker text and
// everything buffered after it come back as trailing conversational text, so
// model output is never silently dropped.
func (s *Scanner) Finish() []Event {
	var tail string
	switch s.state {
	case stateFile:
		tail = s.openRaw + s.pending
	case stateText:
		tail = s.pending
	}

	s.pending = ""
	s.openRaw = ""
	s.path = ""
	s.state = stateText

	if tail == "" {
		return nil
	}
	return []Event{{Type: EventChat, Text: tail}}
}
