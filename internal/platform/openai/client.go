package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// Generator is the text-generation collaborator contract. Callers hold the
// decoding parameters constant across runs so the output format stays stable.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

// Client calls the OpenAI completions API over plain HTTP.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// New constructs a completions client from configuration.
func New(cfg config.OpenAIConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.CallTimeout},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate submits one completion request and returns the first choice's text.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("completion API %d: %s: %w", resp.StatusCode, parsed.Error.Message, sentinel.ErrUnavailable)
		}
		return "", fmt.Errorf("completion API %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response had no choices: %w", sentinel.ErrUnavailable)
	}

	return parsed.Choices[0].Text, nil
}
