package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	genai "google.golang.org/genai"
)

const GeminiModel = "gemini-2.0-flash"

// GeminiProvider is a thin wrapper around the official genai client.
type GeminiProvider struct {
	cli   *genai.Client
	model string
}

type geminiSettings struct {
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption configures a GeminiProvider.
type GeminiOption func(*geminiSettings)

func WithGeminiModel(model string) GeminiOption {
	return func(s *geminiSettings) {
		if model != "" {
			s.model = model
		}
	}
}

func WithGeminiBaseURL(u string) GeminiOption {
	return func(s *geminiSettings) { s.baseURL = u }
}

func WithGeminiHTTPClient(c *http.Client) GeminiOption {
	return func(s *geminiSettings) { s.httpClient = c }
}

func NewGeminiProvider(ctx context.Context, apiKey string, opts ...GeminiOption) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, missingKey("gemini", "GEMINI_API_KEY")
	}
	s := geminiSettings{model: GeminiModel}
	for _, opt := range opts {
		opt(&s)
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  s.httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: s.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{cli: cli, model: s.model}, nil
}

func (g *GeminiProvider) Name() string { return "gemini" }

// Complete maps assistant turns to the "model" role and passes the system
// prompt as the system instruction.
func (g *GeminiProvider) Complete(ctx context.Context, system string, msgs []Message, s Sampling) (string, error) {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.Role(role)))
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(s.Temperature),
		MaxOutputTokens:   int32(maxTokens(s)),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", classify(g.Name(), apiErr.Code, apiErr.Status, apiErr.Message, err)
		}
		return "", &ProviderError{Provider: g.Name(), Err: fmt.Errorf("generate content: %w", err)}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &ProviderError{Provider: g.Name(), Err: ErrEmptyCompletion}
	}
	part := resp.Candidates[0].Content.Parts[0]
	if part.Text == "" && (part.InlineData != nil || part.FunctionCall != nil || part.ExecutableCode != nil) {
		return "", &ProviderError{Provider: g.Name(), Err: ErrUnexpectedContent}
	}
	return finish(g.Name(), part.Text)
}
