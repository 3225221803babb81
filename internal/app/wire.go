// Package app builds the service's collaborators from configuration. It is
// shared by the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"
	"log"

	"sitegen_server/config"
	"sitegen_server/internal/ai"
	"sitegen_server/internal/pipeline"
	"sitegen_server/internal/remote"
	"sitegen_server/internal/sanitize"
	"sitegen_server/internal/store"
)

// NewGenerator returns the primary generator named by cfg.Generator.
func NewGenerator(ctx context.Context, cfg config.Config) (pipeline.Generator, error) {
	switch cfg.Generator {
	case "", pipeline.HeuristicName:
		return pipeline.Heuristic{}, nil
	case "remote":
		return remote.NewClient(remote.Config{
			Endpoint:   cfg.RemoteEndpoint,
			APIKey:     cfg.RemoteAPIKey,
			Schema:     cfg.RemoteSchema,
			Timeout:    cfg.RemoteTimeout,
			MaxRetries: cfg.RemoteMaxRetries,
			RetryDelay: cfg.RemoteRetryDelay,
		}), nil
	case "openai":
		return ai.NewGenerator(cfg.OpenAIKey, cfg.OpenAIModel, 0), nil
	case "gemini":
		g, err := ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
	}
}

// SanitizeOptions maps the sanitizer settings.
func SanitizeOptions(cfg config.Config) sanitize.Options {
	return sanitize.Options{
		AllowExternalLinks: cfg.AllowExternalLinks,
		AllowedDomains:     cfg.Domains(),
		MaxURLLength:       cfg.MaxURLLength,
	}
}

// NewPipeline wires the primary generator into a pipeline that logs every
// event and counts them for /stats.
func NewPipeline(ctx context.Context, cfg config.Config) (*pipeline.Pipeline, *pipeline.CountingRecorder, error) {
	gen, err := NewGenerator(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s generator: %w", cfg.Generator, err)
	}
	stats := &pipeline.CountingRecorder{Next: pipeline.LogRecorder{}}
	p := pipeline.New(gen, pipeline.Options{
		MaxPromptLength:     cfg.MaxPromptLength,
		FallbackToHeuristic: cfg.FallbackToHeuristic,
		Sanitize:            cfg.Sanitize,
		SanitizeOptions:     SanitizeOptions(cfg),
	}, stats)
	log.Printf("Info: pipeline ready (generator=%s, fallback=%t, sanitize=%t)", gen.Name(), cfg.FallbackToHeuristic, cfg.Sanitize)
	return p, stats, nil
}

// NewStore returns a Postgres store when DATABASE_URL is set and a file store
// under OUTPUT_DIR otherwise. The returned func releases the store.
func NewStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("Info: storing configurations in Postgres")
		return pg, pg.Close, nil
	}
	fs, err := store.NewFileStore(cfg.OutputDir, "json")
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Info: storing configurations under %s", cfg.OutputDir)
	return fs, func() {}, nil
}

// PipelineRunDefaults returns the per-run options implied by cfg.
func PipelineRunDefaults(cfg config.Config) pipeline.RunOptions {
	return pipeline.RunOptions{MaxFeatures: cfg.MaxFeatures}
}
