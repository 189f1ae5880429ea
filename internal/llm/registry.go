package llm

import (
	"context"
	"strings"
	"time"
)

const (
	Anthropic = "anthropic"
	OpenAI    = "openai"
	Gemini    = "gemini"
	Groq      = "groq"
)

// Settings holds the credentials and model overrides for every backend.
type Settings struct {
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	GeminiAPIKey    string
	GeminiModel     string
	GroqAPIKey      string
	GroqModel       string

	// Timeout bounds each completion call; zero disables the bound.
	Timeout time.Duration
}

// Registry holds the providers built at process start. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	providers map[string]Provider
	errs      map[string]error
}

// NewRegistry builds every backend whose credential is present. Backends
// without a credential are recorded as configuration errors and reported by
// Select.
func NewRegistry(ctx context.Context, s Settings) *Registry {
	r := &Registry{providers: map[string]Provider{}, errs: map[string]error{}}

	add := func(name string, p Provider, err error) {
		if err != nil {
			r.errs[name] = err
			return
		}
		r.providers[name] = WithTimeout(p, s.Timeout)
	}

	if s.AnthropicAPIKey == "" {
		add(Anthropic, nil, missingKey(Anthropic, "ANTHROPIC_API_KEY"))
	} else {
		add(Anthropic, NewAnthropicProvider(s.AnthropicAPIKey, WithAnthropicModel(s.AnthropicModel)), nil)
	}
	if s.OpenAIAPIKey == "" {
		add(OpenAI, nil, missingKey(OpenAI, "OPENAI_API_KEY"))
	} else {
		add(OpenAI, NewOpenAIProvider(s.OpenAIAPIKey, WithChatModel(s.OpenAIModel)), nil)
	}
	if s.GroqAPIKey == "" {
		add(Groq, nil, missingKey(Groq, "GROQ_API_KEY"))
	} else {
		add(Groq, NewGroqProvider(s.GroqAPIKey, WithChatModel(s.GroqModel)), nil)
	}
	if s.GeminiAPIKey == "" {
		add(Gemini, nil, missingKey(Gemini, "GEMINI_API_KEY"))
	} else {
		gp, err := NewGeminiProvider(ctx, s.GeminiAPIKey, WithGeminiModel(s.GeminiModel))
		if err != nil {
			add(Gemini, nil, &ConfigError{Provider: Gemini, Msg: "client setup failed", Err: err})
		} else {
			add(Gemini, gp, nil)
		}
	}
	return r
}

// NewStaticRegistry wraps already-built providers, keyed by Name().
func NewStaticRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: map[string]Provider{}, errs: map[string]error{}}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// ProviderName normalises a configured provider name. Unknown or empty
// names select Anthropic.
func ProviderName(name string) string {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case OpenAI, Gemini, Groq:
		return n
	}
	return Anthropic
}

// Select returns the provider for name, or a *ConfigError when that backend
// has no usable credential.
func (r *Registry) Select(name string) (Provider, error) {
	name = ProviderName(name)
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	return nil, missingKey(name, strings.ToUpper(name)+"_API_KEY")
}

// WithTimeout bounds every Complete call of p by d, derived from the
// caller's context so cancellation still propagates.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{Provider: p, timeout: d}
}

type timeoutProvider struct {
	Provider
	timeout time.Duration
}

func (t *timeoutProvider) Complete(ctx context.Context, system string, msgs []Message, s Sampling) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Complete(ctx, system, msgs, s)
}
