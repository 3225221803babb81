package pipeline

import (
	"context"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/synth"
	"sitegen_server/internal/types"
)

// Request is what a Generator receives for a single run.
type Request struct {
	Prompt      string
	MaxFeatures int
	// BusinessType overrides classification when set.
	BusinessType extract.BusinessType
}

// Generator produces a candidate configuration from a prompt. Candidates are
// untrusted; the pipeline sanitizes and validates whatever comes back.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req Request) (*types.SiteConfiguration, error)
}

// HeuristicName is the name reported by Heuristic.
const HeuristicName = "heuristic"

// Heuristic is the local keyword-driven generator. It never fails.
type Heuristic struct{}

func (Heuristic) Name() string { return HeuristicName }

func (Heuristic) Generate(ctx context.Context, req Request) (*types.SiteConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ex := extract.Extract(req.Prompt)
	if req.BusinessType != "" {
		ex.BusinessType = req.BusinessType
	}
	return synth.Synthesize(synth.FromExtraction(ex, req.MaxFeatures)), nil
}
