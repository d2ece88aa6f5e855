package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// writeSSEEvent writes one event as an SSE data frame and flushes it.
func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, ev any) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// streamTap accumulates the raw assistant text that flows through a proxied
// stream so the handler can persist it after the SSE loop finishes.
type streamTap struct {
	raw strings.Builder
}

// Raw returns the accumulated assistant text. Call only after the proxied
// stream's channels have closed.
func (t *streamTap) Raw() string {
	return t.raw.String()
}

// captureStream tees a provider stream: the returned stream behaves exactly
// like the original while the tap records every delta. Channel closes carry
// through, so the raw text is safe to read once the consumer observes the
// proxied Ch closed. Cancelling ctx stops the tee even when the consumer has
// stopped receiving.
func captureStream(ctx context.Context, s *core.ChatStream) (*core.ChatStream, *streamTap) {
	tap := &streamTap{}

	ch := make(chan core.ChatChunk, cap(s.Ch))
	go func() {
		defer close(ch)
		for chunk := range s.Ch {
			tap.raw.WriteString(chunk.Delta)
			select {
			case ch <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	return &core.ChatStream{Ch: ch, Err: s.Err, Final: s.Final}, tap
}
