package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "anthropic", "openai", "gemini", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single generation request. Default: 60s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-mini"
	BaseURL string // Optional. Any OpenAI-compatible endpoint.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Timeout:    60 * time.Second,
	}
}

// envOverrides maps LINGUA_* variables onto config fields.
func envOverrides(cfg *Config) map[string]*string {
	return map[string]*string{
		"LINGUA_LLM_PROVIDER":        &cfg.Provider,
		"LINGUA_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"LINGUA_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"LINGUA_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"LINGUA_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"LINGUA_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"LINGUA_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"LINGUA_GEMINI_MODEL":        &cfg.Gemini.Model,
		"LINGUA_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"LINGUA_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"LINGUA_OPENROUTER_BASE_URL": &cfg.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv builds a Config from LINGUA_* environment variables,
// falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range envOverrides(&cfg) {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if v := os.Getenv("LINGUA_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig probes the providers' standard API key variables in
// priority order (Anthropic, OpenAI, Gemini, OpenRouter) and returns a
// Config for the first one found. Returns (Config{}, false) if none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("LINGUA_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
