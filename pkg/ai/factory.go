package ai

import (
	"fmt"

	"internmail-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3", "mistral"
}

// NewCompleter creates a Completer based on the config. Errors coming out of
// the returned completer carry the retriable flag callers key fallback
// decisions on.
func NewCompleter(cfg Config) (Completer, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return &classifiedCompleter{
			provider: ProviderGemini,
			inner:    gemini.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel),
		}, nil

	case ProviderOllama:
		return &classifiedCompleter{
			provider: ProviderOllama,
			inner:    NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel),
		}, nil

	default:
		// Auto: both providers behind the fallback chain when Gemini is
		// configured, Ollama alone otherwise
		ollama := &classifiedCompleter{
			provider: ProviderOllama,
			inner:    NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel),
		}
		if cfg.GeminiAPIKey == "" {
			return ollama, nil
		}
		geminiSvc := &classifiedCompleter{
			provider: ProviderGemini,
			inner:    gemini.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel),
		}
		return NewFallbackService(geminiSvc, ollama), nil
	}
}
