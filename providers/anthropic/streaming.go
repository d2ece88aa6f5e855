package anthropic

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// doStreamChat performs a streaming chat request.
func (p *Anthropic) doStreamChat(ctx context.Context, req *core.ChatRequest) (*core.ChatStream, error) {
	if len(req.Messages) == 0 {
		return nil, core.ErrNoMessages
	}

	antReq := buildRequest(req, true)

	body, err := json.Marshal(antReq)
	if err != nil {
		return nil, newDecodeError(err)
	}

	url := p.config.BaseURL + messagesPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newNetworkError(err)
	}

	for key, values := range p.buildHeaders() {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	resp, err := p.config.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, newNetworkError(err)
	}

	requestID := resp.Header.Get("request-id")

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, normalizeError(resp.StatusCode, respBody, requestID)
	}

	chunkCh := make(chan core.ChatChunk, 100)
	errCh := make(chan error, 1)
	finalCh := make(chan *core.ChatResponse, 1)

	go p.processSSEStream(ctx, resp.Body, chunkCh, errCh, finalCh)

	return &core.ChatStream{
		Ch:    chunkCh,
		Err:   errCh,
		Final: finalCh,
	}, nil
}

// processSSEStream reads the SSE stream and emits chunks.
func (p *Anthropic) processSSEStream(
	ctx context.Context,
	body io.ReadCloser,
	chunkCh chan<- core.ChatChunk,
	errCh chan<- error,
	finalCh chan<- *core.ChatResponse,
) {
	defer body.Close()
	defer close(chunkCh)
	defer close(errCh)
	defer close(finalCh)

	reader := bufio.NewReader(body)

	var responseID string
	var responseModel string
	var usage anthropicUsage
	var sawUsage bool

	for {
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			errCh <- newNetworkError(err)
			return
		}

		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "event:") {
			continue
		}

		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		var event anthropicStreamEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			errCh <- newDecodeError(err)
			return
		}

		switch event.Type {
		case "message_start":
			if event.Message != nil {
				responseID = event.Message.ID
				responseModel = event.Message.Model
				if event.Message.Usage != nil {
					usage = *event.Message.Usage
					sawUsage = true
				}
			}

		case "content_block_delta":
			if event.Delta != nil && event.Delta.Type == "text_delta" && event.Delta.Text != "" {
				select {
				case chunkCh <- core.ChatChunk{Delta: event.Delta.Text}:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}

		case "message_delta":
			if event.Usage != nil {
				usage.OutputTokens = event.Usage.OutputTokens
				sawUsage = true
			}

		case "message_stop":
			goto done

		case "error":
			if event.Error != nil {
				errCh <- &core.ProviderError{
					Provider: "anthropic",
					Code:     event.Error.Type,
					Message:  event.Error.Message,
					Err:      core.ErrServer,
				}
				return
			}
		}
	}

done:
	finalResp := &core.ChatResponse{
		ID:    responseID,
		Model: core.ModelID(responseModel),
	}
	if sawUsage {
		finalResp.Usage = mapUsage(&usage)
	}

	finalCh <- finalResp
}
