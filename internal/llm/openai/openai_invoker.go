package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"munidocs/internal/config"
	"munidocs/internal/domain"
	"munidocs/internal/port"
)

const (
	providerName = "openai"
	defaultModel = "gpt-4o"
)

// Invoker implements port.LLMInvoker using the OpenAI chat completions API.
type Invoker struct {
	apiKey string
	model  string
	opts   []option.RequestOption
}

// NewInvoker creates an OpenAI-backed invoker. cfg.BaseURL points the client
// at any OpenAI-compatible endpoint.
func NewInvoker(cfg *config.LLMConfig) *Invoker {
	return newInvoker(cfg, cfg.BaseURL)
}

// NewInvokerWithEndpoint creates an invoker pointing at a custom base URL (for testing).
func NewInvokerWithEndpoint(cfg *config.LLMConfig, baseURL string) *Invoker {
	return newInvoker(cfg, baseURL)
}

func newInvoker(cfg *config.LLMConfig, baseURL string) *Invoker {
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	// A failed call is reported once; retrying would bill the caller twice.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Invoker{apiKey: cfg.APIKey, model: model, opts: opts}
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

	client := openai.NewClient(i.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(in.Prompt.SystemText),
			openai.UserMessage(in.Prompt.UserText),
		},
		Temperature: openai.Float(in.Temperature),
		MaxTokens:   openai.Int(int64(in.MaxTokens)),
	})
	if err != nil {
		return nil, classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	if resp.Model != "" {
		model = resp.Model
	}
	return &domain.GenerationResult{
		Text:      resp.Choices[0].Message.Content,
		TokensIn:  int(resp.Usage.PromptTokens),
		TokensOut: int(resp.Usage.CompletionTokens),
		Model:     model,
	}, nil
}

// classifyError maps SDK errors onto the domain's upstream/transport split.
func classifyError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		body := apiErr.RawJSON()
		if body == "" {
			body = apiErr.Message
		}
		return &domain.UpstreamError{
			Provider:   providerName,
			StatusCode: apiErr.StatusCode,
			Body:       body,
		}
	}
	return &domain.TransportError{Provider: providerName, Err: err}
}
