// Package llm adapts the supported model backends to a single text
// completion call.
package llm

import (
	"context"
	"strings"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn sent to a backend.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Sampling carries the per-call generation parameters.
type Sampling struct {
	Temperature float32
	MaxTokens   int
}

const DefaultMaxTokens = 8192

// Provider performs exactly one completion request against a backend and
// returns the trimmed text. Implementations never retry.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system string, msgs []Message, p Sampling) (string, error)
}

func maxTokens(p Sampling) int {
	if p.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return p.MaxTokens
}

func finish(provider, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ProviderError{Provider: provider, Err: ErrEmptyCompletion}
	}
	return text, nil
}
