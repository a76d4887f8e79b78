// Package oracle provides free-text classification clients. A client is
// handed a text and a finite candidate set and returns its best-guess label
// as unconstrained text; callers must not assume the result is a member of
// the candidate set.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDisabled is returned when no API key is configured for the selected
// provider.
var ErrDisabled = errors.New("oracle: classification client disabled (missing API key)")

// Client is the classification interface consumed by the triage service.
type Client interface {
	Classify(ctx context.Context, text string, candidates []string) (string, error)
}

// New constructs a classification client for the named provider.
// Supported providers: "gemini" (default) and "openai".
func New(provider, apiKey, model string, timeout time.Duration) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrDisabled
	}
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "gemini":
		return NewGeminiClient(apiKey, model, timeout), nil
	case "openai":
		return NewOpenAIClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("oracle: unknown provider %q", provider)
	}
}
