// Package pipeline turns a free-text prompt into a validated site
// configuration: generate, optionally sanitize, then validate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/sanitize"
	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

// DefaultMaxPromptLength bounds prompts in characters.
const DefaultMaxPromptLength = 2000

// InputError means the prompt was rejected before any processing.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "invalid prompt: " + e.Reason
}

// Options configure a Pipeline.
type Options struct {
	MaxPromptLength int
	// FallbackToHeuristic retries a failed generation with the heuristic
	// generator. The switch is recorded, never silent.
	FallbackToHeuristic bool
	Sanitize            bool
	SanitizeOptions     sanitize.Options
}

// RunOptions are per-run knobs.
type RunOptions struct {
	MaxFeatures  int
	BusinessType extract.BusinessType
	Sanitize     bool
}

// Result describes a finished run. Config is set even when the run was
// rejected so callers can show what failed.
type Result struct {
	RunID     string                   `json:"runId"`
	Config    *types.SiteConfiguration `json:"config"`
	Report    validate.Report          `json:"report"`
	Generator string                   `json:"generator"`
	FellBack  bool                     `json:"fellBack"`
	Sanitized bool                     `json:"sanitized"`
	Duration  time.Duration            `json:"-"`
}

// Pipeline is stateless apart from its collaborators and may be shared by
// concurrent callers.
type Pipeline struct {
	generator Generator
	fallback  Generator
	recorder  Recorder
	opts      Options
}

// New builds a pipeline around gen. A nil gen means the heuristic generator,
// a nil rec discards events.
func New(gen Generator, opts Options, rec Recorder) *Pipeline {
	if gen == nil {
		gen = Heuristic{}
	}
	if rec == nil {
		rec = NopRecorder{}
	}
	if opts.MaxPromptLength <= 0 {
		opts.MaxPromptLength = DefaultMaxPromptLength
	}
	if opts.SanitizeOptions.MaxURLLength <= 0 {
		opts.SanitizeOptions.MaxURLLength = sanitize.DefaultMaxURLLength
	}
	return &Pipeline{generator: gen, fallback: Heuristic{}, recorder: rec, opts: opts}
}

// GeneratorName reports the primary generator.
func (p *Pipeline) GeneratorName() string { return p.generator.Name() }

// CheckPrompt applies the prompt gate on its own.
func (p *Pipeline) CheckPrompt(prompt string) error {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return &InputError{Reason: "prompt is empty"}
	}
	if n := utf8.RuneCountInString(trimmed); n > p.opts.MaxPromptLength {
		return &InputError{Reason: fmt.Sprintf("prompt is %d characters, the limit is %d", n, p.opts.MaxPromptLength)}
	}
	return nil
}

// Run executes one generation. It returns an *InputError for a bad prompt,
// the generator's error when generation fails without fallback, and a
// *validate.RejectedError alongside the Result when the output fails
// validation.
func (p *Pipeline) Run(ctx context.Context, prompt string, ro RunOptions) (*Result, error) {
	if err := p.CheckPrompt(prompt); err != nil {
		return nil, err
	}
	start := time.Now()
	res := &Result{RunID: uuid.NewString(), Generator: p.generator.Name()}
	p.emit(res, EventRunStarted, fmt.Sprintf("prompt of %d characters", utf8.RuneCountInString(strings.TrimSpace(prompt))))

	req := Request{Prompt: strings.TrimSpace(prompt), MaxFeatures: ro.MaxFeatures, BusinessType: ro.BusinessType}
	cfg, err := p.generate(ctx, p.generator, req)
	if err != nil {
		p.emit(res, EventGenerateFailed, err.Error())
		if !p.opts.FallbackToHeuristic || p.generator.Name() == HeuristicName || ctx.Err() != nil {
			return nil, fmt.Errorf("generate with %s: %w", p.generator.Name(), err)
		}
		res.Generator = p.fallback.Name()
		res.FellBack = true
		p.emit(res, EventFallback, fmt.Sprintf("%s failed, using %s", p.generator.Name(), p.fallback.Name()))
		if cfg, err = p.generate(ctx, p.fallback, req); err != nil {
			return nil, fmt.Errorf("generate with %s: %w", p.fallback.Name(), err)
		}
	}

	var warnings []string
	if p.opts.Sanitize || ro.Sanitize {
		sr := sanitize.Sanitize(cfg, p.opts.SanitizeOptions)
		cfg = sr.Sanitized
		res.Sanitized = true
		warnings = sr.Warnings
		if sr.Changed {
			p.emit(res, EventSanitizeChanged, fmt.Sprintf("%d warnings", len(sr.Warnings)))
		}
	}

	res.Config = cfg
	res.Report = validate.Validate(cfg)
	res.Report.AddWarnings(warnings...)
	res.Duration = time.Since(start)

	if err := res.Report.Err(); err != nil {
		p.emit(res, EventRunRejected, fmt.Sprintf("%d errors", len(res.Report.Errors)))
		return res, err
	}
	p.emit(res, EventRunAccepted, res.Duration.String())
	return res, nil
}

func (p *Pipeline) generate(ctx context.Context, g Generator, req Request) (*types.SiteConfiguration, error) {
	cfg, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New("generator returned no configuration")
	}
	return cfg, nil
}

func (p *Pipeline) emit(res *Result, kind, detail string) {
	p.recorder.Record(Event{RunID: res.RunID, Kind: kind, Generator: res.Generator, Detail: detail, Time: time.Now()})
}
