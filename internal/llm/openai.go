package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	OpenAIModel = openai.GPT4o
	GroqModel   = "llama-3.3-70b-versatile"

	groqBaseURL = "https://api.groq.com/openai/v1"

	// groqJSONSuffix is appended to the system prompt for Groq, whose models
	// tend to wrap JSON in prose.
	groqJSONSuffix = "\n\nCRITICAL: Your response must start with { and end with }. No text before or after the JSON object. No markdown. No code fences. Raw JSON only."
)

// ChatProvider calls an OpenAI-compatible chat completions endpoint. It backs
// both the OpenAI and the Groq providers.
type ChatProvider struct {
	name         string
	model        string
	systemSuffix string
	client       *openai.Client
}

type chatSettings struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// ChatOption configures a ChatProvider.
type ChatOption func(*chatSettings)

func WithChatModel(model string) ChatOption {
	return func(s *chatSettings) {
		if model != "" {
			s.model = model
		}
	}
}

func WithChatBaseURL(u string) ChatOption {
	return func(s *chatSettings) { s.baseURL = u }
}

func WithChatHTTPClient(c *http.Client) ChatOption {
	return func(s *chatSettings) { s.httpClient = c }
}

func NewOpenAIProvider(apiKey string, opts ...ChatOption) *ChatProvider {
	return newChatProvider("openai", apiKey, OpenAIModel, "", "", opts)
}

// NewGroqProvider returns a provider for Groq's OpenAI-compatible API. It
// appends a raw-JSON instruction to every system prompt.
func NewGroqProvider(apiKey string, opts ...ChatOption) *ChatProvider {
	return newChatProvider("groq", apiKey, GroqModel, groqBaseURL, groqJSONSuffix, opts)
}

func newChatProvider(name, apiKey, model, baseURL, suffix string, opts []ChatOption) *ChatProvider {
	s := chatSettings{model: model, baseURL: baseURL}
	for _, opt := range opts {
		opt(&s)
	}
	cfg := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}
	if s.httpClient != nil {
		cfg.HTTPClient = s.httpClient
	}
	return &ChatProvider{
		name:         name,
		model:        s.model,
		systemSuffix: suffix,
		client:       openai.NewClientWithConfig(cfg),
	}
}

func (p *ChatProvider) Name() string { return p.name }

func (p *ChatProvider) Complete(ctx context.Context, system string, msgs []Message, s Sampling) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system + p.systemSuffix,
	})
	for _, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxTokens(s),
		Temperature: s.Temperature,
	})
	if err != nil {
		return "", p.classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: p.name, Err: ErrEmptyCompletion}
	}
	msg := resp.Choices[0].Message
	if msg.Content == "" && (len(msg.ToolCalls) > 0 || msg.Refusal != "") {
		return "", &ProviderError{Provider: p.name, Err: ErrUnexpectedContent}
	}
	return finish(p.name, msg.Content)
}

func (p *ChatProvider) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Type
		if c, ok := apiErr.Code.(string); ok && c != "" {
			code = c
		}
		return classify(p.name, apiErr.HTTPStatusCode, code, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classify(p.name, reqErr.HTTPStatusCode, "", string(reqErr.Body), err)
	}
	return &ProviderError{Provider: p.name, Err: fmt.Errorf("chat completion: %w", err)}
}
