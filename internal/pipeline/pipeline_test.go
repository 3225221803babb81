package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/synth"
	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

type stubGenerator struct {
	name string
	cfg  *types.SiteConfiguration
	err  error

	mu    sync.Mutex
	calls int
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(ctx context.Context, req Request) (*types.SiteConfiguration, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.cfg, s.err
}

func kinds(events map[string]int) []string {
	out := make([]string, 0, len(events))
	for k := range events {
		out = append(out, k)
	}
	return out
}

func TestRunEndToEnd(t *testing.T) {
	rec := &CountingRecorder{}
	p := New(nil, Options{}, rec)

	res, err := p.Run(context.Background(), "Create a portfolio site for Creative Studio", RunOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.Report.Valid)
	assert.Equal(t, HeuristicName, res.Generator)
	assert.False(t, res.FellBack)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "Creative Studio", res.Config.Name)
	assert.Equal(t, "Design by Creative Studio", res.Config.Pages.Home.Hero.Title)
	assert.Len(t, res.Config.Pages.Home.Features, synth.DefaultMaxFeatures)
	assert.Nil(t, res.Config.Pages.About)

	counts := rec.Snapshot()
	assert.Equal(t, 1, counts[EventRunStarted])
	assert.Equal(t, 1, counts[EventRunAccepted])
}

func TestRunIsDeterministic(t *testing.T) {
	p := New(nil, Options{}, nil)
	prompt := "A restaurant called Blue Fig with an about page and contact form"
	a, err := p.Run(context.Background(), prompt, RunOptions{MaxFeatures: 4})
	require.NoError(t, err)
	b, err := p.Run(context.Background(), prompt, RunOptions{MaxFeatures: 4})
	require.NoError(t, err)

	assert.Equal(t, a.Config, b.Config)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.NotNil(t, a.Config.Pages.About)
	assert.NotNil(t, a.Config.Pages.Contact)
	assert.Nil(t, a.Config.Pages.Services)
}

func TestRunBusinessTypeOverride(t *testing.T) {
	p := New(nil, Options{}, nil)
	res, err := p.Run(context.Background(), "A site for Northwind", RunOptions{BusinessType: extract.TypeLegal})
	require.NoError(t, err)
	assert.Equal(t, "Trust Northwind", res.Config.Pages.Home.Hero.Title)
}

func TestRunPromptGate(t *testing.T) {
	gen := &stubGenerator{name: "remote"}
	p := New(gen, Options{MaxPromptLength: 10}, nil)

	for _, prompt := range []string{"", "   \n\t", strings.Repeat("x", 11)} {
		res, err := p.Run(context.Background(), prompt, RunOptions{})
		assert.Nil(t, res)
		var inErr *InputError
		assert.True(t, errors.As(err, &inErr), "prompt %q", prompt)
	}
	assert.Zero(t, gen.calls)

	_, err := p.Run(context.Background(), strings.Repeat("é", 10), RunOptions{})
	var inErr *InputError
	assert.False(t, errors.As(err, &inErr))
}

func TestRunFallback(t *testing.T) {
	boom := errors.New("remote unavailable")
	rec := &CountingRecorder{}
	p := New(&stubGenerator{name: "remote", err: boom}, Options{FallbackToHeuristic: true}, rec)

	res, err := p.Run(context.Background(), "Build a website for Bright Dental clinic", RunOptions{})
	require.NoError(t, err)
	assert.True(t, res.FellBack)
	assert.Equal(t, HeuristicName, res.Generator)
	assert.Equal(t, "Care by Bright Dental", res.Config.Pages.Home.Hero.Title)

	counts := rec.Snapshot()
	assert.Equal(t, 1, counts[EventGenerateFailed])
	assert.Equal(t, 1, counts[EventFallback], "events: %v", kinds(counts))
}

func TestRunWithoutFallbackReturnsError(t *testing.T) {
	boom := errors.New("remote unavailable")
	rec := &CountingRecorder{}
	p := New(&stubGenerator{name: "remote", err: boom}, Options{}, rec)

	res, err := p.Run(context.Background(), "Build a website for Bright Dental", RunOptions{})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, rec.Snapshot()[EventFallback])
}

func TestRunNilConfigIsFailure(t *testing.T) {
	p := New(&stubGenerator{name: "remote"}, Options{}, nil)
	_, err := p.Run(context.Background(), "anything", RunOptions{})
	assert.Error(t, err)
}

func TestRunCanceledContextSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := New(&stubGenerator{name: "remote", err: context.Canceled}, Options{FallbackToHeuristic: true}, nil)
	_, err := p.Run(ctx, "anything", RunOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsSensitiveOutput(t *testing.T) {
	cfg := synth.Synthesize(synth.Input{Name: "Test Company", BusinessType: extract.TypeBusiness})
	cfg.Name = "Test Company with API_KEY=secret123"
	rec := &CountingRecorder{}
	p := New(&stubGenerator{name: "remote", cfg: cfg}, Options{}, rec)

	res, err := p.Run(context.Background(), "a business site", RunOptions{})
	require.NotNil(t, res)
	var rejected *validate.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.False(t, res.Report.Valid)
	assert.Equal(t, 1, rec.Snapshot()[EventRunRejected])
}

func TestRunSanitizesBeforeValidating(t *testing.T) {
	cfg := synth.Synthesize(synth.Input{Name: "Acme", BusinessType: extract.TypeAgency})
	cfg.Pages.Home.Features[0].Description = strings.Repeat("z", 200)
	cfg.Pages.Home.Hero.CTA.Primary.Href = "javascript:alert(1)"
	gen := &stubGenerator{name: "remote", cfg: cfg}

	p := New(gen, Options{}, nil)
	_, err := p.Run(context.Background(), "agency site", RunOptions{})
	var rejected *validate.RejectedError
	require.True(t, errors.As(err, &rejected))

	rec := &CountingRecorder{}
	p = New(gen, Options{Sanitize: true}, rec)
	res, err := p.Run(context.Background(), "agency site", RunOptions{})
	require.NoError(t, err)
	assert.True(t, res.Sanitized)
	assert.Equal(t, "/", res.Config.Pages.Home.Hero.CTA.Primary.Href)
	assert.NotEmpty(t, res.Report.Warnings)
	assert.Equal(t, 1, rec.Snapshot()[EventSanitizeChanged])

	// The generator's value must not be modified by sanitizing.
	assert.Equal(t, "javascript:alert(1)", cfg.Pages.Home.Hero.CTA.Primary.Href)
}

func TestRunConcurrent(t *testing.T) {
	rec := &CountingRecorder{}
	p := New(nil, Options{}, rec)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Run(context.Background(), "Consulting firm called Northstar Advisory", RunOptions{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, rec.Snapshot()[EventRunAccepted])
}
