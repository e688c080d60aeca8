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

	"munidocs/internal/config"
	"munidocs/internal/domain"
	"munidocs/internal/port"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	providerName = "claude"
	defaultModel = "claude-sonnet-4-20250514"
)

// Invoker implements port.LLMInvoker using the Anthropic Messages API.
type Invoker struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewInvoker creates a Claude-backed invoker. cfg.BaseURL overrides the
// public endpoint when set.
func NewInvoker(cfg *config.LLMConfig) *Invoker {
	endpoint := apiURL
	if cfg.BaseURL != "" {
		endpoint = strings.TrimRight(cfg.BaseURL, "/") + "/v1/messages"
	}
	return newInvoker(cfg, endpoint)
}

// NewInvokerWithEndpoint creates an invoker pointing at a custom API endpoint (for testing).
func NewInvokerWithEndpoint(cfg *config.LLMConfig, endpoint string) *Invoker {
	return newInvoker(cfg, endpoint)
}

func newInvoker(cfg *config.LLMConfig, endpoint string) *Invoker {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Invoker{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (i *Invoker) Provider() string { return providerName }

func (i *Invoker) Invoke(ctx context.Context, in port.InvokeInput) (*domain.GenerationResult, error) {
	if strings.TrimSpace(i.apiKey) == "" {
		return nil, &domain.ConfigurationError{Key: "MUNIDOCS_LLM_API_KEY"}
	}

	model := in.Model
	if model == "" {
		model = i.model
	}

	reqBody := map[string]interface{}{
		"model":       model,
		"max_tokens":  in.MaxTokens,
		"temperature": in.Temperature,
		"system":      in.Prompt.SystemText,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": in.Prompt.UserText,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", i.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Provider: providerName, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Provider: providerName, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return parseResponse(respBody, model)
}

// apiResponse models the Anthropic Messages API response.
type apiResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func parseResponse(body []byte, model string) (*domain.GenerationResult, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.Model != "" {
		model = resp.Model
	}
	return &domain.GenerationResult{
		Text:      text.String(),
		TokensIn:  resp.Usage.InputTokens,
		TokensOut: resp.Usage.OutputTokens,
		Model:     model,
	}, nil
}
