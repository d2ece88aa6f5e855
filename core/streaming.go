package core

import (
	"context"
	"strings"
)

// ChatStream represents a streaming response from a provider.
//
// Channel Rules:
//   - Providers MUST close Ch, Err, and Final when finished
//   - On context cancellation, providers MUST terminate promptly, close the
//     upstream connection, and close all channels
//   - Err channel emits at most one error
//   - Final channel emits exactly once on success (or zero times on failure)
//   - Deltas are never empty
type ChatStream struct {
	// Ch emits text deltas in order. Closed when the stream ends.
	Ch <-chan ChatChunk

	// Err emits at most one error. Closed when the stream ends.
	Err <-chan error

	// Final is sent exactly once after successful completion, carrying
	// usage when the backend reported it. Output may be left empty; the
	// consumer already holds the concatenated deltas.
	Final <-chan *ChatResponse
}

// DrainStream accumulates all deltas and returns the final ChatResponse.
// Blocks until the stream completes or the context cancels.
func DrainStream(ctx context.Context, s *ChatStream) (*ChatResponse, error) {
	if s == nil {
		return nil, ErrBadRequest
	}

	var accumulated strings.Builder
	var streamErr error
	var finalResp *ChatResponse

	// Local copies are set to nil once closed so their cases go quiescent
	// instead of firing continuously with ok=false.
	ch, errCh, finalCh := s.Ch, s.Err, s.Final

	for ch != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case chunk, ok := <-ch:
			if !ok {
				ch = nil
				continue
			}
			accumulated.WriteString(chunk.Delta)

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				streamErr = err
			}
			// Keep draining Ch so the producer can finish.

		case resp, ok := <-finalCh:
			if !ok {
				finalCh = nil
				continue
			}
			finalResp = resp
		}
	}

	if streamErr == nil && errCh != nil {
		select {
		case err, ok := <-errCh:
			if ok && err != nil {
				streamErr = err
			}
		default:
		}
	}

	if streamErr != nil {
		return nil, streamErr
	}

	if finalResp == nil && finalCh != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case resp, ok := <-finalCh:
			if ok {
				finalResp = resp
			}
		}
	}

	if finalResp == nil {
		finalResp = &ChatResponse{}
	}
	if finalResp.Output == "" {
		finalResp.Output = accumulated.String()
	}

	return finalResp, nil
}
