package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/adelab-inc/ds-bridge-ui-sub000/core"
)

// chatCompletionsPath is the API endpoint for chat completions.
const chatCompletionsPath = "/v1/chat/completions"

// doChat performs a non-streaming chat request.
func (p *OpenAI) doChat(ctx context.Context, req *core.ChatRequest) (*core.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, core.ErrNoMessages
	}

	oaReq := buildRequest(req, false, nil)

	body, err := json.Marshal(oaReq)
	if err != nil {
		return nil, newDecodeError(err)
	}

	url := p.config.BaseURL + chatCompletionsPath
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

	requestID := resp.Header.Get("x-request-id")

	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, respBody, requestID)
	}

	var oaResp openAIResponse
	if err := json.Unmarshal(respBody, &oaResp); err != nil {
		return nil, newDecodeError(err)
	}

	return mapResponse(&oaResp), nil
}
