package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress string `mapstructure:"SERVER_ADDRESS"` // e.g., ":8080"
	AppEnv        string `mapstructure:"APP_ENV"`        // "production" enables gin release mode
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	// AI Configuration
	AIProvider      string        `mapstructure:"AI_PROVIDER"` // anthropic, openai, gemini or groq
	AnthropicAPIKey string        `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel  string        `mapstructure:"ANTHROPIC_MODEL"`
	OpenAIAPIKey    string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string        `mapstructure:"OPENAI_MODEL"`
	GeminiAPIKey    string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel     string        `mapstructure:"GEMINI_MODEL"`
	GroqAPIKey      string        `mapstructure:"GROQ_API_KEY"`
	GroqModel       string        `mapstructure:"GROQ_MODEL"`
	ProviderTimeout time.Duration `mapstructure:"PROVIDER_TIMEOUT"`

	// Generation
	RetryDelay          time.Duration `mapstructure:"RETRY_DELAY"`
	GenerateMaxAttempts int           `mapstructure:"GENERATE_MAX_ATTEMPTS"`
	VariantMaxAttempts  int           `mapstructure:"VARIANT_MAX_ATTEMPTS"`
	InsertMaxAttempts   int           `mapstructure:"INSERT_MAX_ATTEMPTS"`
	RenderCacheSize     int           `mapstructure:"RENDER_CACHE_SIZE"`

	// Reference page digests
	ReferenceFetchEnabled bool          `mapstructure:"REFERENCE_FETCH_ENABLED"`
	ReferenceFetchTimeout time.Duration `mapstructure:"REFERENCE_FETCH_TIMEOUT"`

	// Pages, sharing and deployment
	PageStoreSize int      `mapstructure:"PAGE_STORE_SIZE"`
	ShareBaseURL  string   `mapstructure:"SHARE_BASE_URL"`
	DeployCLIPath string   `mapstructure:"DEPLOY_CLI_PATH"` // e.g., "vercel"; empty disables deploys
	DeployCLIArgs []string `mapstructure:"DEPLOY_CLI_ARGS"` // comma separated in env, e.g. "--prod,--yes"

	// MCP server
	MCPTransport string `mapstructure:"MCP_TRANSPORT"` // stdio or http
	MCPAddress   string `mapstructure:"MCP_ADDRESS"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":          ":8080",
	"APP_ENV":                 "development",
	"LOG_LEVEL":               "info",
	"AI_PROVIDER":             "anthropic",
	"ANTHROPIC_API_KEY":       "",
	"ANTHROPIC_MODEL":         "",
	"OPENAI_API_KEY":          "",
	"OPENAI_MODEL":            "",
	"GEMINI_API_KEY":          "",
	"GEMINI_MODEL":            "",
	"GROQ_API_KEY":            "",
	"GROQ_MODEL":              "",
	"PROVIDER_TIMEOUT":        "90s",
	"RETRY_DELAY":             "500ms",
	"GENERATE_MAX_ATTEMPTS":   3,
	"VARIANT_MAX_ATTEMPTS":    2,
	"INSERT_MAX_ATTEMPTS":     2,
	"RENDER_CACHE_SIZE":       256,
	"REFERENCE_FETCH_ENABLED": false,
	"REFERENCE_FETCH_TIMEOUT": "10s",
	"PAGE_STORE_SIZE":         500,
	"SHARE_BASE_URL":          "http://localhost:8080",
	"DEPLOY_CLI_PATH":         "",
	"DEPLOY_CLI_ARGS":         []string{},
	"MCP_TRANSPORT":           "stdio",
	"MCP_ADDRESS":             ":8090",
}

// LoadConfig reads configuration from config.yaml in path and from
// environment variables, which take precedence.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")

	// Defaults register every key so env-only deployments unmarshal too.
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("config.yaml not found, relying on environment variables", "path", path)
		} else {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		slog.Info("using configuration file", "file", v.ConfigFileUsed())
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if config.apiKeyFor(config.AIProvider) == "" {
		slog.Warn("selected AI provider has no API key; generation requests will fail", "provider", config.AIProvider)
	}
	return config, nil
}

func (c Config) apiKeyFor(provider string) string {
	switch provider {
	case "openai":
		return c.OpenAIAPIKey
	case "gemini":
		return c.GeminiAPIKey
	case "groq":
		return c.GroqAPIKey
	}
	return c.AnthropicAPIKey
}

// writeMargin covers request decoding, rendering and writing the response.
const writeMargin = 30 * time.Second

// WriteTimeout is the HTTP write deadline that lets the longest retry
// budget run to completion. Variants run concurrently, so the largest
// single budget bounds every flow. Zero disables the deadline when no
// provider timeout is set.
func (c Config) WriteTimeout() time.Duration {
	if c.ProviderTimeout <= 0 {
		return 0
	}
	attempts := max(c.GenerateMaxAttempts, c.VariantMaxAttempts, c.InsertMaxAttempts, 1)
	d := time.Duration(attempts)*c.ProviderTimeout +
		time.Duration(attempts-1)*c.RetryDelay +
		writeMargin
	if c.ReferenceFetchEnabled {
		d += c.ReferenceFetchTimeout
	}
	return d
}
