package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/metrics"
	"github.com/abhisek/eliteprep/internal/store"
)

// Deps are the optional collaborators of the logging middleware.
// Any field may be nil.
type Deps struct {
	Events  store.EventRepo
	Log     *logger.Logger
	Metrics *metrics.Metrics
}

// NewProvider creates a Provider from configuration.
// The result is wrapped as: caller → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, deps Deps) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, deps)
	retried := WithRetry(logged, cfg.Retry, deps.Log)
	return WithTimeout(retried, cfg.Timeout), nil
}
