package ai

import (
	"errors"

	"storefront_ai_server/internal/llm"
	"storefront_ai_server/internal/page"
)

var (
	// ErrNoVariants is returned when every variant of a fan-out failed. It is
	// joined with the first variant's error.
	ErrNoVariants = errors.New("no variants could be generated")
	// ErrInvalidInput marks requests rejected before any provider call.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorKind is the caller-facing failure class.
type ErrorKind string

const (
	KindAuth         ErrorKind = "auth-configuration"
	KindRateLimited  ErrorKind = "rate-limited"
	KindBilling      ErrorKind = "billing"
	KindMalformed    ErrorKind = "malformed-output"
	KindUnknown      ErrorKind = "unknown"
	KindInvalidInput ErrorKind = "invalid-input"
)

// KindOf classifies err by its typed cause.
func KindOf(err error) ErrorKind {
	var (
		ce *llm.ConfigError
		re *llm.RateLimitError
		be *llm.BillingError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.As(err, &ce):
		return KindAuth
	case errors.As(err, &re):
		return KindRateLimited
	case errors.As(err, &be):
		return KindBilling
	case malformed(err):
		return KindMalformed
	}
	return KindUnknown
}

// malformed reports failures caused by the shape of the model's reply.
// These are the failures worth another attempt. Empty and non-text
// completions count as malformed, so they are retried as well.
func malformed(err error) bool {
	var (
		pe *page.ParseError
		ve *page.ValidationError
	)
	return errors.As(err, &pe) ||
		errors.As(err, &ve) ||
		errors.Is(err, llm.ErrEmptyCompletion) ||
		errors.Is(err, llm.ErrUnexpectedContent)
}

// UserMessage returns the stable message shown for err.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindAuth:
		var ce *llm.ConfigError
		if errors.As(err, &ce) {
			return ce.Error()
		}
		return "AI provider is not configured."
	case KindRateLimited:
		return "Rate limit reached. Please wait a moment and try again."
	case KindBilling:
		return "Insufficient credits. Please top up your API account."
	case KindMalformed:
		return "AI had trouble formatting the response. Please try again."
	case KindInvalidInput:
		return err.Error()
	}
	return "Failed to generate page. Please try again."
}
