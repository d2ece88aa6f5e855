package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// messagesPath is the API endpoint for messages.
const messagesPath = "/v1/messages"

// doChat performs a non-streaming chat request.
func (p *Anthropic) doChat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, core.ErrNoMessages
	}

	antReq := buildRequest(req, false)

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
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(err)
	}

	requestID := resp.Header.Get("request-id")

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, respBody, requestID)
	}

	var antResp anthropicResponse
	if err := json.Unmarshal(respBody, &antResp); err != nil {
		return nil, newDecodeError(err)
	}

	return mapResponse(&antResp), nil
}
