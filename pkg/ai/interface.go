package ai

import (
	"context"
	"errors"
	"fmt"
)

// Completer is the single-turn LLM contract: prompt in, raw text out. The
// response may be prose, JSON, or anything in between; callers parse it
// permissively. No retry happens inside an implementation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

// ServiceError is a classified completion failure. Retriable is true for
// rate-limit, quota, 5xx and connection failures; callers may degrade to a
// deterministic fallback on those. Malformed-request failures are not
// retriable and surface as operation errors.
type ServiceError struct {
	Provider  ProviderType
	Retriable bool
	Err       error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// IsRetriable reports whether err is a ServiceError flagged retriable
func IsRetriable(err error) bool {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Retriable
	}
	return false
}

// classifyError wraps a provider error into a ServiceError with the
// retriable flag derived from the failure mode
func classifyError(provider ProviderType, err error) error {
	if err == nil {
		return nil
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return err
	}
	return &ServiceError{
		Provider:  provider,
		Retriable: isConnectionError(err) || isQuotaError(err) || isServerError(err),
		Err:       err,
	}
}

// classifiedCompleter tags every error from the wrapped completer
type classifiedCompleter struct {
	provider ProviderType
	inner    Completer
}

func (c *classifiedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := c.inner.Complete(ctx, prompt)
	if err != nil {
		return "", classifyError(c.provider, err)
	}
	return out, nil
}
