package ai

import (
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel = openai.GPT4o
	defaultTimeout     = 60 * time.Second
	defaultMaxRetries  = 1
	retryDelay         = 2 * time.Second
)

// Generator produces site configurations with an OpenAI chat model.
type Generator struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
}

// NewGenerator builds a Generator for the public OpenAI API.
func NewGenerator(apiKey, model string, timeout time.Duration) *Generator {
	return NewGeneratorWithConfig(openai.DefaultConfig(apiKey), model, timeout)
}

// NewGeneratorWithConfig allows a custom base URL, e.g. a proxy or a test server.
func NewGeneratorWithConfig(config openai.ClientConfig, model string, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	config.HTTPClient = &http.Client{Timeout: timeout}
	return &Generator{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		maxRetries: defaultMaxRetries,
		retryDelay: retryDelay,
	}
}

func (g *Generator) Name() string { return "openai" }
