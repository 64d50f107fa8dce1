package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/store"
)

// ErrNotConfigured is returned by NewProviderFromEnv when no provider or
// API key is present in the environment.
var ErrNotConfigured = errors.New("no LLM provider configured")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

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
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewProviderFromEnv builds a provider from MATHCAT_LLM_PROVIDER when set,
// otherwise from the first well-known API key found.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if os.Getenv("MATHCAT_LLM_PROVIDER") != "" {
		return NewProvider(ctx, ConfigFromEnv(), eventRepo, log)
	}
	cfg, ok := DiscoverConfig()
	if !ok {
		return nil, ErrNotConfigured
	}
	return NewProvider(ctx, cfg, eventRepo, log)
}
