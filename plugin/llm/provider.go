package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// geminiBaseURL is Google's OpenAI-compatible endpoint for Gemini models.
const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Config holds the LLM provider configuration.
type Config struct {
	// Provider selects the default chat provider: "gemini", "openai" or "ollama".
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey string
	OpenAIModel  string

	OllamaBaseURL string
	OllamaModel   string

	MaxRetries int
	Timeout    time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:      "gemini",
		GeminiModel:   "gemini-2.0-flash",
		OpenAIModel:   "gpt-4o-mini",
		OllamaBaseURL: "http://localhost:11434/v1",
		OllamaModel:   "llama3.1",
		MaxRetries:    3,
		Timeout:       30 * time.Second,
	}
}

// Provider wraps OpenAI-compatible clients for all supported backends. The
// active chat provider can be switched at runtime; word-problem generation
// and Q&A refinement always go through Gemini regardless of the active one.
type Provider struct {
	mu       sync.RWMutex
	provider string

	clients map[string]*openai.Client
	config  *Config
}

// NewProvider creates a new LLM provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Apply defaults for unset values
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = "http://localhost:11434/v1"
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = "llama3.1"
	}

	geminiConfig := openai.DefaultConfig(cfg.GeminiAPIKey)
	geminiConfig.BaseURL = geminiBaseURL

	// Ollama ignores the API key but the client requires a non-empty one.
	ollamaConfig := openai.DefaultConfig("ollama")
	ollamaConfig.BaseURL = cfg.OllamaBaseURL

	clients := map[string]*openai.Client{
		"gemini": openai.NewClientWithConfig(geminiConfig),
		"openai": openai.NewClient(cfg.OpenAIAPIKey),
		"ollama": openai.NewClientWithConfig(ollamaConfig),
	}
	if _, ok := clients[cfg.Provider]; !ok {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return &Provider{
		provider: cfg.Provider,
		clients:  clients,
		config:   cfg,
	}, nil
}

// SetProvider switches the active chat provider at runtime.
func (p *Provider) SetProvider(name string) error {
	if _, ok := p.clients[name]; !ok {
		return fmt.Errorf("unsupported LLM provider: %s", name)
	}

	p.mu.Lock()
	p.provider = name
	p.mu.Unlock()

	slog.Info("LLM provider switched", "provider", name)
	return nil
}

// CurrentProvider returns the active provider name and its chat model.
func (p *Provider) CurrentProvider() (string, string) {
	p.mu.RLock()
	name := p.provider
	p.mu.RUnlock()
	return name, p.modelFor(name)
}

func (p *Provider) modelFor(name string) string {
	switch name {
	case "ollama":
		return p.config.OllamaModel
	case "openai":
		return p.config.OpenAIModel
	default:
		return p.config.GeminiModel
	}
}

func (p *Provider) activeClient() (*openai.Client, string) {
	p.mu.RLock()
	name := p.provider
	p.mu.RUnlock()
	return p.clients[name], p.modelFor(name)
}

func (p *Provider) geminiClient() (*openai.Client, string) {
	return p.clients["gemini"], p.config.GeminiModel
}

// Message represents a chat message.
type Message struct {
	Role    string
	Content string
}

// chat performs a chat completion against the given client with retries.
func (p *Provider) chat(ctx context.Context, client *openai.Client, model string, messages []Message, temperature float32, maxTokens int) (string, error) {
	var result string
	err := p.doWithRetry(ctx, func() error {
		llmMessages := make([]openai.ChatCompletionMessage, len(messages))
		for i, msg := range messages {
			llmMessages[i] = openai.ChatCompletionMessage{
				Role:    msg.Role,
				Content: msg.Content,
			}
		}

		req := openai.ChatCompletionRequest{
			Model:       model,
			Messages:    llmMessages,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		}

		resp, err := client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty chat response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}

	return result, nil
}

// doWithRetry executes a function with exponential backoff retry.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				slog.Debug("LLM request failed, retrying",
					"attempt", attempt+1,
					"wait_time", waitTime,
					"error", err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}
