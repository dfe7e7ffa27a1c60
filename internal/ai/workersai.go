package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mimicry-labs/personad/internal/prompt"
)

const workersAIBaseURL = "https://api.cloudflare.com/client/v4/accounts"

// WorkersAI talks to Cloudflare's managed Workers AI run endpoint.
type WorkersAI struct {
	accountID string
	apiToken  string
	client    *http.Client
	baseURL   string
}

func NewWorkersAI(accountID, apiToken string) *WorkersAI {
	return &WorkersAI{
		accountID: accountID,
		apiToken:  apiToken,
		client:    &http.Client{Timeout: 120 * time.Second},
		baseURL:   workersAIBaseURL,
	}
}

type workersAIRequest struct {
	Messages  []prompt.Turn `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type workersAIResponse struct {
	Result struct {
		Response string `json:"response"`
	} `json:"result"`
	Success bool `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (w *WorkersAI) Run(ctx context.Context, model string, turns []prompt.Turn, maxTokens int) (string, error) {
	body, err := json.Marshal(workersAIRequest{
		Messages:  turns,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/ai/run/%s", w.baseURL, w.accountID, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.apiToken)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("workers ai call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var apiResp workersAIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !apiResp.Success {
		if len(apiResp.Errors) > 0 {
			return "", fmt.Errorf("workers ai error %d: %s", resp.StatusCode, apiResp.Errors[0].Message)
		}
		return "", fmt.Errorf("workers ai error %d: %s", resp.StatusCode, string(respBody))
	}

	return apiResp.Result.Response, nil
}
