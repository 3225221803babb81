package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"sitegen_server/internal/ai/prompts"
	"sitegen_server/internal/pipeline"
	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator produces site configurations with a Gemini model.
type GeminiGenerator struct {
	cli        *genai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
}

// NewGeminiGenerator creates a client for the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is not configured")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiGenerator{cli: cli, model: model, maxRetries: defaultMaxRetries, retryDelay: retryDelay}, nil
}

func (g *GeminiGenerator) Name() string { return "gemini" }

func (g *GeminiGenerator) Generate(ctx context.Context, req pipeline.Request) (*types.SiteConfiguration, error) {
	full := prompts.SiteSystemPrompt + "\n\n" + prompts.GetSiteGenerationPrompt(req.Prompt, req.MaxFeatures, string(req.BusinessType))
	contents := []*genai.Content{{Parts: []*genai.Part{{Text: full}}}}
	config := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Gemini call failed, retrying after %s... Error: %v", g.retryDelay, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(g.retryDelay):
			}
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, config)
		if err != nil {
			lastErr = fmt.Errorf("gemini generate content failed: %w", err)
			if !utils.ShouldRetry(err) {
				break
			}
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, ErrEmptyOutput
		}
		return parseSiteConfig(resp.Candidates[0].Content.Parts[0].Text)
	}
	return nil, lastErr
}
