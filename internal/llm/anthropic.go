package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const AnthropicModel = "claude-sonnet-4-20250514"

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	model  string
	client anthropic.Client
}

type anthropicSettings struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// AnthropicOption configures the Anthropic provider.
type AnthropicOption func(*anthropicSettings)

func WithAnthropicModel(model string) AnthropicOption {
	return func(s *anthropicSettings) {
		if model != "" {
			s.model = model
		}
	}
}

// WithAnthropicBaseURL points the provider at another host, mainly for tests.
func WithAnthropicBaseURL(u string) AnthropicOption {
	return func(s *anthropicSettings) { s.baseURL = u }
}

func WithAnthropicHTTPClient(c *http.Client) AnthropicOption {
	return func(s *anthropicSettings) { s.httpClient = c }
}

func NewAnthropicProvider(apiKey string, opts ...AnthropicOption) *AnthropicProvider {
	s := anthropicSettings{model: AnthropicModel}
	for _, opt := range opts {
		opt(&s)
	}
	// Attempts are budgeted by the generator, not the SDK.
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if s.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(s.baseURL))
	}
	if s.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(s.httpClient))
	}
	return &AnthropicProvider{
		model:  s.model,
		client: anthropic.NewClient(reqOpts...),
	}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Complete(ctx context.Context, system string, msgs []Message, s Sampling) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		block := anthropic.NewTextBlock(m.Content)
		if m.Role == RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   int64(maxTokens(s)),
		Temperature: anthropic.Float(float64(s.Temperature)),
		Messages:    messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", p.classify(err)
	}
	if len(resp.Content) == 0 {
		return "", &ProviderError{Provider: p.Name(), Err: ErrEmptyCompletion}
	}
	if block := resp.Content[0]; block.Type != "text" {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("%w: %s", ErrUnexpectedContent, block.Type)}
	}
	return finish(p.Name(), resp.Content[0].Text)
}

// anthropicErrorBody is the error envelope of a non-2xx response.
type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *AnthropicProvider) classify(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return &ProviderError{Provider: p.Name(), Err: fmt.Errorf("messages: %w", err)}
	}
	raw := apiErr.RawJSON()
	var body anthropicErrorBody
	_ = json.Unmarshal([]byte(raw), &body)
	msg := body.Error.Message
	if msg == "" {
		msg = strings.TrimSpace(raw)
	}
	return classify(p.Name(), apiErr.StatusCode, body.Error.Type, msg, errors.New(msg))
}
