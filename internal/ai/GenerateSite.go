package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"sitegen_server/internal/ai/prompts"
	"sitegen_server/internal/pipeline"
	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"
)

// Generate asks the model for a configuration. The result is a candidate and
// still has to pass sanitization and validation.
func (g *Generator) Generate(ctx context.Context, req pipeline.Request) (*types.SiteConfiguration, error) {
	userPrompt := prompts.GetSiteGenerationPrompt(req.Prompt, req.MaxFeatures, string(req.BusinessType))
	output, err := g.complete(ctx, prompts.SiteSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}
	cfg, err := parseSiteConfig(output)
	if err != nil {
		log.Printf("WARN: could not parse %d bytes of model output: %v", len(output), err)
		return nil, err
	}
	return cfg, nil
}

// complete runs one chat completion in JSON mode, retrying transient failures.
func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   2048,
		Temperature: 0.3,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	for attempt := 0; attempt < g.maxRetries && err != nil && utils.ShouldRetry(err); attempt++ {
		log.Printf("OpenAI call failed, retrying after %s... Error: %v", g.retryDelay, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(g.retryDelay):
		}
		resp, err = g.client.CreateChatCompletion(ctx, req)
	}
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenAI usage for failed request: %+v", resp.Usage)
		return "", errors.New("openai returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
