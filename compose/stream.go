package compose

import (
	"context"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// StreamEvents adapts a provider stream into parser events. The returned
// channel delivers events in recognition order and is closed after exactly
// one terminal event: Done when the upstream ended normally, Error when it
// failed. Cancelling ctx stops emission immediately; cancellation reaches
// the provider through the context shared with the upstream call.
func StreamEvents(ctx context.Context, stream *core.ChatStream) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)

		scanner := NewScanner()

		emit := func(events []Event) bool {
			for _, ev := range events {
				select {
				case out <- ev:
				case <-ctx.Done():
					return false
				}
			}
			return true
		}

		for {
			select {
			case <-ctx.Done():
				return

			case chunk, ok := <-stream.Ch:
				if !ok {
					// Upstream ended; flush the tail, then terminate with
					// the stream's outcome.
					if !emit(scanner.Finish()) {
						return
					}

					var streamErr error
					select {
					case err, ok := <-stream.Err:
						if ok && err != nil {
							streamErr = err
						}
					case <-ctx.Done():
						return
					}

					if streamErr != nil {
						emit([]Event{{Type: EventError, Message: streamErr.Error()}})
						return
					}

					// Let the producer hand over the final response so its
					// goroutine can exit; usage is consumed elsewhere.
					select {
					case <-stream.Final:
					case <-ctx.Done():
						return
					}

					emit([]Event{{Type: EventDone}})
					return
				}

				if !emit(scanner.Write(chunk.Delta)) {
					return
				}
			}
		}
	}()

	return out
}
