package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"sitegen_server/internal/ai/prompts"
	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

// Refine asks the model to correct cfg given the problems in report and an
// optional user instruction. The caller must validate the result again.
func (g *Generator) Refine(ctx context.Context, cfg *types.SiteConfiguration, report validate.Report, instruction string) (*types.SiteConfiguration, error) {
	current, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration for refinement: %w", err)
	}
	problems := append(append([]string{}, report.Errors...), report.Warnings...)

	userPrompt, system := prompts.GetSiteRefinePrompt(string(current), problems, instruction)
	output, err := g.complete(ctx, system, userPrompt)
	if err != nil {
		return nil, err
	}
	refined, err := parseSiteConfig(output)
	if err != nil {
		return nil, fmt.Errorf("failed to parse refined configuration: %w", err)
	}
	log.Printf("Info: model refined configuration %q addressing %d problems", refined.Name, len(problems))
	return refined, nil
}
