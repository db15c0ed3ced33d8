package ai_test

import (
	"context"
	"errors"
	"testing"

	"internmail-backend/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retriableErr() error {
	return &ai.ServiceError{Provider: ai.ProviderGemini, Retriable: true, Err: errors.New("gemini API error (429): quota exceeded")}
}

func fatalErr() error {
	return &ai.ServiceError{Provider: ai.ProviderGemini, Retriable: false, Err: errors.New("gemini API error (400): bad request")}
}

func TestFallbackService_GeminiSucceeds(t *testing.T) {
	gemini := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "from gemini", nil
	})
	ollama := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("ollama should not be called")
		return "", nil
	})

	svc := ai.NewFallbackService(gemini, ollama)
	out, err := svc.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from gemini", out)
}

func TestFallbackService_QuotaFallsBackToOllama(t *testing.T) {
	gemini := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", retriableErr()
	})
	ollama := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "from ollama", nil
	})

	svc := ai.NewFallbackService(gemini, ollama)
	out, err := svc.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from ollama", out)
}

func TestFallbackService_FatalErrorDoesNotFallBack(t *testing.T) {
	gemini := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", fatalErr()
	})
	ollama := ai.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("ollama should not be called")
		return "", nil
	})

	svc := ai.NewFallbackService(gemini, ollama)
	_, err := svc.Complete(context.Background(), "hi")
	require.Error(t, err)
	assert.False(t, ai.IsRetriable(err))
}

func TestFallbackService_NoProvider(t *testing.T) {
	svc := ai.NewFallbackService(nil, nil)
	_, err := svc.Complete(context.Background(), "hi")
	require.Error(t, err)

	var se *ai.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, ai.ProviderAuto, se.Provider)
}

func TestIsRetriable(t *testing.T) {
	assert.True(t, ai.IsRetriable(retriableErr()))
	assert.False(t, ai.IsRetriable(fatalErr()))
	assert.False(t, ai.IsRetriable(errors.New("plain error")))
	assert.False(t, ai.IsRetriable(nil))
}
