package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with event
// logging. There is no retry layer: a failed generation surfaces to the
// caller, who decides whether to try again.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
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
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo, log), nil
}

// ErrNoProvider is returned when neither LINGUA_* settings nor a standard
// provider API key are present.
var ErrNoProvider = errors.New("no LLM provider configured: set LINGUA_LLM_PROVIDER and its API key, or ANTHROPIC_API_KEY / OPENAI_API_KEY / GEMINI_API_KEY / OPENROUTER_API_KEY")

// NewProviderFromEnv resolves configuration from the environment and builds
// a provider. Explicit LINGUA_* settings win; otherwise standard provider
// keys are probed.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log *logger.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if os.Getenv("LINGUA_LLM_PROVIDER") != "" {
			return nil, cfg, err
		}
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, ErrNoProvider
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}

	p, err := NewProvider(ctx, cfg, eventRepo, log)
	return p, cfg, err
}
