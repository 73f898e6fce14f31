package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"billscan/internal/config"
	"billscan/internal/oracle"
	"billscan/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"

	// DefaultModel is used when the provider config names no model.
	DefaultModel = "claude-sonnet-4-20250514"

	providerName = "claude"
)

// Oracle implements port.CompletionOracle using the Anthropic Messages API.
type Oracle struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// New creates a Claude-backed completion oracle.
func New(cfg *config.OracleProviderConfig) *Oracle {
	return newOracle(cfg, apiURL)
}

// NewWithEndpoint creates an oracle pointing at a custom API endpoint (for testing).
func NewWithEndpoint(cfg *config.OracleProviderConfig, endpoint string) *Oracle {
	return newOracle(cfg, endpoint)
}

// Factory adapts New to oracle.ProviderFactory.
func Factory(cfg *config.OracleProviderConfig) (port.CompletionOracle, error) {
	return New(cfg), nil
}

func newOracle(cfg *config.OracleProviderConfig, endpoint string) *Oracle {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Oracle{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (o *Oracle) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	reqBody := map[string]interface{}{
		"model":      o.model,
		"max_tokens": 4096,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": input.Prompt,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", o.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, oracle.NewServiceError(providerName, 0, fmt.Errorf("calling anthropic API: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oracle.NewServiceError(providerName, resp.StatusCode, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := oracle.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, oracle.NewRateLimitError(providerName, baseErr, retryAfter)
		}
		return nil, oracle.NewServiceError(providerName, resp.StatusCode, baseErr)
	}

	text, err := parseResponse(respBody)
	if err != nil {
		return nil, oracle.NewServiceError(providerName, resp.StatusCode, err)
	}
	return &port.CompletionOutput{Text: text, ModelUsed: o.model}, nil
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("empty response from API (stop_reason: %s)", resp.StopReason)
	}
	return strings.TrimSpace(b.String()), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
