package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrEmptyCompletion   = errors.New("no text content in response")
	ErrUnexpectedContent = errors.New("unexpected content block in response")
)

// ConfigError reports a missing or rejected credential.
type ConfigError struct {
	Provider string
	Msg      string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type RateLimitError struct {
	Provider string
	Err      error
}

func (e *RateLimitError) Error() string { return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err) }
func (e *RateLimitError) Unwrap() error { return e.Err }

type BillingError struct {
	Provider string
	Err      error
}

func (e *BillingError) Error() string {
	return fmt.Sprintf("%s: billing or quota exhausted: %v", e.Provider, e.Err)
}
func (e *BillingError) Unwrap() error { return e.Err }

// ProviderError is any other failure of a completion call, including an
// unusable response body.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func missingKey(provider, envVar string) *ConfigError {
	return &ConfigError{Provider: provider, Msg: envVar + " is not set"}
}

var billingCodes = map[string]bool{
	"insufficient_quota":         true,
	"billing_error":              true,
	"billing_hard_limit_reached": true,
	"payment_required":           true,
	"insufficient_credits":       true,
}

// classify maps an upstream HTTP status and error payload to a typed error.
// code is the provider's machine-readable error code or type; msg is the
// provider's error message.
func classify(provider string, status int, code, msg string, err error) error {
	lower := strings.ToLower(msg)
	billing := billingCodes[strings.ToLower(code)] ||
		strings.Contains(lower, "credit balance") ||
		strings.Contains(lower, "insufficient credits")

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ConfigError{Provider: provider, Msg: "credential rejected", Err: err}
	case status == http.StatusPaymentRequired || billing:
		return &BillingError{Provider: provider, Err: err}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Provider: provider, Err: err}
	}
	return &ProviderError{Provider: provider, StatusCode: status, Err: err}
}
