package compose

import (
	"strings"
	"testing"
)

// collect runs the scanner over the given fragments and returns the joined
// chat text and the code events.
func collect(t *testing.T, fragments ...string) (chat string, files []FileBlock) {
	t.Helper()

	s := NewScanner()
	var events []Event
	for _, f := range fragments {
		events = append(events, s.Write(f)...)
	}
	events = append(events, s.Finish()...)

	var b strings.Builder
	for _, ev := range events {
		switch ev.Type {
		case EventChat:
			b.WriteString(ev.Text)
		case EventCode:
			files = append(files, FileBlock{Path: ev.Path, Content: ev.Content})
		default:
			t.Fatalf("unexpected event type %q from scanner", ev.Type)
		}
	}
	return b.String(), files
}

func TestScannerSingleFragment(t *testing.T) {
	chat, files := collect(t, "before <file path=\"a.go\">package a</file> after")

	if chat != "before  after" {
		t.Errorf("chat = %q, want 'before  after'", chat)
	}
	if len(files) != 1 || files[0] != (FileBlock{"a.go", "package a"}) {
		t.Errorf("files = %+v", files)
	}
}

func TestScannerWithholdsPartialMarker(t *testing.T) {
	s := NewScanner()

	events := s.Write("abc<fi")
	if len(events) != 1 || events[0].Type != EventChat || events[0].Text != "abc" {
		t.Fatalf("Write(abc<fi) events = %+v, want single chat 'abc'", events)
	}

	events = s.Write(`le path="x">y</file>`)
	if len(events) != 1 || events[0].Type != EventCode {
		t.Fatalf("second Write events = %+v, want single code event", events)
	}
	if events[0].Path != "x" || events[0].Content != "y" {
		t.Errorf("code event = %+v", events[0])
	}
}

func TestScannerRefutedPrefixFlushes(t *testing.T) {
	s := NewScanner()

	// "<fix" refutes the marker prefix; the withheld text must come back.
	var got strings.Builder
	for _, ev := range s.Write("a<fi") {
		got.WriteString(ev.Text)
	}
	for _, ev := range s.Write("x b") {
		got.WriteString(ev.Text)
	}
	for _, ev := range s.Finish() {
		got.WriteString(ev.Text)
	}

	if got.String() != "a<fix b" {
		t.Errorf("chat = %q, want 'a<fix b'", got.String())
	}
}

func TestScannerChunkBoundaryInvariance(t *testing.T) {
	inputs := []string{
		"plain prose only",
		"pre <file path=\"a.tsx\">body text</file> post",
		"<file path=\"x\">1</file><file path=\"y\">2</file>",
		"mix <file path=\"dir/f.go\">func main() {}\n</file> tail <file path=\"dir/f.go\">dup</file>",
		"trailing <file path=\"open.ts\">never closed",
		"lone < and <file path=\"q\">a</file>",
	}

	for _, input := range inputs {
		wantChat, wantFiles := collect(t, input)

		// Split at every boundary, including mid-marker.
		for cut := 0; cut <= len(input); cut++ {
			chat, files := collect(t, input[:cut], input[cut:])

			if chat != wantChat {
				t.Errorf("input %q cut %d: chat = %q, want %q", input, cut, chat, wantChat)
			}
			if len(files) != len(wantFiles) {
				t.Errorf("input %q cut %d: files = %+v, want %+v", input, cut, files, wantFiles)
				continue
			}
			for i := range wantFiles {
				if files[i] != wantFiles[i] {
					t.Errorf("input %q cut %d: files[%d] = %+v, want %+v", input, cut, i, files[i], wantFiles[i])
				}
			}
		}

		// Character-at-a-time delivery.
		fragments := make([]string, 0, len(input))
		for _, r := range input {
			fragments = append(fragments, string(r))
		}
		chat, files := collect(t, fragments...)
		if chat != wantChat || len(files) != len(wantFiles) {
			t.Errorf("input %q char-by-char: chat = %q files = %+v, want %q %+v",
				input, chat, files, wantChat, wantFiles)
		}
	}
}

func TestScannerNeverLeaksPartialMarker(t *testing.T) {
	input := "pre <file path=\"a.tsx\">body</file> post"

	for cut := 0; cut <= len(input); cut++ {
		s := NewScanner()
		var chats []string
		for _, ev := range s.Write(input[:cut]) {
			if ev.Type == EventChat {
				chats = append(chats, ev.Text)
			}
		}
		// Before Finish, no emitted chat fragment may contain any part of a
		// marker that batch parsing removes.
		for _, c := range chats {
			if strings.Contains(c, "<file path=") || strings.Contains(c, "</file>") {
				t.Errorf("cut %d: chat fragment %q leaks marker text", cut, c)
			}
			if strings.HasSuffix(c, "<") || strings.HasSuffix(c, "<f") || strings.HasSuffix(c, "<fi") {
				t.Errorf("cut %d: chat fragment %q ends with withheld marker prefix", cut, c)
			}
		}
	}
}

func TestScannerUnterminatedReemitsMarker(t *testing.T) {
	s := NewScanner()
	s.Write(`<file path="a.ts">partial content`)

	events := s.Finish()
	if len(events) != 1 || events[0].Type != EventChat {
		t.Fatalf("Finish() events = %+v, want single chat event", events)
	}
	if events[0].Text != `<file path="a.ts">partial content` {
		t.Errorf("Finish() text = %q, want raw marker and content verbatim", events[0].Text)
	}
}

func TestScannerCloseMarkerSplit(t *testing.T) {
	s := NewScanner()

	var events []Event
	events = append(events, s.Write(`<file path="a">content</fi`)...)
	events = append(events, s.Write("le>done")...)
	events = append(events, s.Finish()...)

	if len(events) != 2 {
		t.Fatalf("events = %+v, want code then chat", events)
	}
	if events[0].Type != EventCode || events[0].Content != "content" {
		t.Errorf("events[0] = %+v", events[0])
	}
	if events[1].Type != EventChat || events[1].Text != "done" {
		t.Errorf("events[1] = %+v", events[1])
	}
}
