package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter"
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one logical request, retries included.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string // tests and proxies
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // any OpenAI-compatible endpoint
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// providerEnv describes where one provider reads its settings from.
// Fields point into a Config so one table serves loading, discovery
// and validation.
type providerEnv struct {
	name      string
	prefix    string // MATHCAT_<prefix>_API_KEY, _MODEL, _BASE_URL
	vendorKey string // the vendor's own variable, used for discovery
	fields    func(c *Config) (key, model, baseURL *string)
}

// providerEnvs is in discovery priority order.
var providerEnvs = []providerEnv{
	{
		name: "anthropic", prefix: "ANTHROPIC", vendorKey: "ANTHROPIC_API_KEY",
		fields: func(c *Config) (*string, *string, *string) {
			return &c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL
		},
	},
	{
		name: "openai", prefix: "OPENAI", vendorKey: "OPENAI_API_KEY",
		fields: func(c *Config) (*string, *string, *string) {
			return &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL
		},
	},
	{
		name: "gemini", prefix: "GEMINI", vendorKey: "GEMINI_API_KEY",
		fields: func(c *Config) (*string, *string, *string) {
			return &c.Gemini.APIKey, &c.Gemini.Model, nil
		},
	},
	{
		name: "openrouter", prefix: "OPENROUTER", vendorKey: "OPENROUTER_API_KEY",
		fields: func(c *Config) (*string, *string, *string) {
			return &c.OpenRouter.APIKey, &c.OpenRouter.Model, &c.OpenRouter.BaseURL
		},
	},
}

func lookupProviderEnv(name string) (providerEnv, bool) {
	for _, pe := range providerEnvs {
		if pe.name == name {
			return pe, true
		}
	}
	return providerEnv{}, false
}

// DefaultConfig returns the built-in models and retry policy.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-sonnet"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv layers MATHCAT_* variables over DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, "MATHCAT_LLM_PROVIDER")

	for _, pe := range providerEnvs {
		key, model, baseURL := pe.fields(&cfg)
		setFromEnv(key, "MATHCAT_"+pe.prefix+"_API_KEY")
		setFromEnv(model, "MATHCAT_"+pe.prefix+"_MODEL")
		if baseURL != nil {
			setFromEnv(baseURL, "MATHCAT_"+pe.prefix+"_BASE_URL")
		}
	}

	if t := os.Getenv("MATHCAT_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig returns a Config for the first provider whose vendor
// API key variable is set, or false if none is.
func DiscoverConfig() (Config, bool) {
	for _, pe := range providerEnvs {
		k := os.Getenv(pe.vendorKey)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = pe.name
		key, _, _ := pe.fields(&cfg)
		*key = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	pe, ok := lookupProviderEnv(c.Provider)
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key, _, _ := pe.fields(&c); *key == "" {
		return fmt.Errorf("MATHCAT_%s_API_KEY is required for the %s provider", pe.prefix, pe.name)
	}
	return nil
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
