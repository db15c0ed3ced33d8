package ai

import (
	"context"
	"fmt"
	"log"
)

// FallbackService routes completions across two providers:
// Gemini first (better quality), Ollama when Gemini hits its quota or a
// provider-side failure, and one Gemini retry when Ollama is unreachable.
// Errors escaping this service are already classified (ServiceError).
type FallbackService struct {
	gemini Completer
	ollama Completer
}

// NewFallbackService creates a fallback service with both providers.
// Either may be nil; at least one must be set.
func NewFallbackService(gemini, ollama Completer) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// Complete implements Completer with provider fallback
func (f *FallbackService) Complete(ctx context.Context, prompt string) (string, error) {
	if f.gemini != nil {
		result, err := f.gemini.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}

		if !IsRetriable(err) || f.ollama == nil {
			return "", err
		}
		log.Printf("[AI] Gemini failed: %v, falling back to Ollama", err)
	}

	if f.ollama != nil {
		result, err := f.ollama.Complete(ctx, prompt)
		if err == nil {
			return result, nil
		}

		// Ollama down but Gemini configured: one more try in case the
		// earlier failure was transient
		if isConnectionError(err) && f.gemini != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying Gemini", err)
			return f.gemini.Complete(ctx, prompt)
		}

		return "", err
	}

	return "", &ServiceError{Provider: ProviderAuto, Retriable: false, Err: fmt.Errorf("no AI provider available")}
}
