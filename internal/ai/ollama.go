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

// Ollama talks to a local Ollama server's /api/chat endpoint.
type Ollama struct {
	host   string
	client *http.Client
}

func NewOllama(host string) *Ollama {
	return &Ollama{
		host:   host,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []prompt.Turn `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict int `json:"num_predict"`
}

type ollamaResponse struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

type ollamaError struct {
	Error string `json:"error"`
}

func (o *Ollama) Run(ctx context.Context, model string, turns []prompt.Turn, maxTokens int) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:    model,
		Messages: turns,
		Stream:   false,
		Options:  ollamaOptions{NumPredict: maxTokens},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ollamaError
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, errResp.Error)
		}
		return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp ollamaResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return apiResp.Message.Content, nil
}
