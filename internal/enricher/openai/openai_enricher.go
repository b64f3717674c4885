package openai

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
	apiURL = "https://api.openai.com/v1/chat/completions"
)

// Enricher implements port.Enricher using the OpenAI Chat Completions API.
type Enricher struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewEnricher creates an OpenAI-based enricher from a provider config.
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
		model = "gpt-4o-mini"
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

func (e *Enricher) Name() string { return "openai" }

func (e *Enricher) Enrich(ctx context.Context, input port.EnrichInput) (*port.EnrichOutput, error) {
	prompt := enricher.BuildExtractionPrompt(input)

	reqBody := map[string]interface{}{
		"model":                 e.model,
		"max_completion_tokens": 1024,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"response_format": map[string]interface{}{
			"type": "json_object",
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
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := enricher.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, enricher.NewRateLimitError("openai", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, e.model)
}

// apiResponse models the OpenAI Chat Completions API response.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func parseResponse(body []byte, model string) (*port.EnrichOutput, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.Choices[0].FinishReason == "length" {
		return nil, fmt.Errorf("output truncated (finish_reason: length)")
	}

	fields, err := enricher.DecodeFields(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}

	return &port.EnrichOutput{
		Fields:    fields,
		ModelUsed: model,
	}, nil
}
