package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vocalis/internal/config"
	"vocalis/internal/enricher"
	"vocalis/internal/port"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
)

// Enricher implements port.Enricher using the Anthropic Messages API.
type Enricher struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewEnricher creates a Claude-based enricher from a provider config.
func NewEnricher(cfg *config.EnricherProviderConfig) *Enricher {
	return newEnricher(cfg, apiURL)
}

// NewEnricherWithEndpoint creates an enricher pointing at a custom API endpoint (for testing).
func NewEnricherWithEndpoint(cfg *config.EnricherProviderConfig, endpoint string) *Enricher {
	return newEnricher(cfg, endpoint)
}

func newEnricher(cfg *config.EnricherProviderConfig, endpoint string) *Enricher {
	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Enricher{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (e *Enricher) Name() string { return "claude" }

func (e *Enricher) Enrich(ctx context.Context, input port.EnrichInput) (*port.EnrichOutput, error) {
	prompt := enricher.BuildExtractionPrompt(input)

	reqBody := map[string]interface{}{
		"model":      e.model,
		"max_tokens": 1024,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := enricher.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, enricher.NewRateLimitError("claude", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, e.model)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte, model string) (*port.EnrichOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.StopReason == "max_tokens" {
		return nil, fmt.Errorf("output truncated (stop_reason: max_tokens)")
	}

	fields, err := enricher.DecodeFields(resp.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}

	return &port.EnrichOutput{
		Fields:    fields,
		ModelUsed: model,
	}, nil
}
