package llm

import (
	"fmt"

	"munidocs/internal/config"
	"munidocs/internal/llm/claude"
	"munidocs/internal/llm/openai"
	"munidocs/internal/port"
)

// ProviderFactory creates an LLMInvoker from the provider config.
type ProviderFactory func(cfg *config.LLMConfig) (port.LLMInvoker, error)

// registry of provider factories, keyed by config.LLMConfig.Provider.
var providers = map[string]ProviderFactory{
	"openai": func(cfg *config.LLMConfig) (port.LLMInvoker, error) { return openai.NewInvoker(cfg), nil },
	"claude": func(cfg *config.LLMConfig) (port.LLMInvoker, error) { return claude.NewInvoker(cfg), nil },
}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewInvoker creates the LLMInvoker selected by cfg.Provider. A missing API
// key is not an error here; the invoker reports it on each call instead.
func NewInvoker(cfg *config.LLMConfig) (port.LLMInvoker, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
