package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitegen_server/internal/extract"
	"sitegen_server/internal/store"
	"sitegen_server/internal/synth"
	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

// run executes the CLI with a private config directory so a config.yaml in
// the working directory cannot leak into the test.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("GENERATOR", "heuristic")
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config-dir", t.TempDir()}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSite(t *testing.T, name string, cfg *types.SiteConfiguration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, store.WriteFile(path, cfg))
	return path
}

func TestGenerateToStdout(t *testing.T) {
	stdout, _, err := run(t, "generate", "--max-features", "2", "Create", "a", "portfolio", "site", "for", "Creative", "Studio")
	require.NoError(t, err)

	var cfg types.SiteConfiguration
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "Creative Studio", cfg.Name)
	assert.Equal(t, "Design by Creative Studio", cfg.Pages.Home.Hero.Title)
	assert.Len(t, cfg.Pages.Home.Features, 2)
}

func TestGenerateWritesFileAndPages(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site.yaml")
	pagesDir := filepath.Join(dir, "pages")

	stdout, _, err := run(t, "generate", "--type", "law", "--out", out, "--pages-dir", pagesDir,
		"A website for Northwind with about and contact pages")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+out)
	assert.Contains(t, stdout, "index.json")

	cfg, err := store.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Trust Northwind", cfg.Pages.Home.Hero.Title)

	for _, name := range []string{"index.json", "about.json", "contact.json", "site.json"} {
		_, err := os.Stat(filepath.Join(pagesDir, name))
		assert.NoError(t, err, name)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, _, err := run(t, "generate", "   ")
	assert.Error(t, err)

	_, _, err = run(t, "generate", "--format", "xml", "A site for Acme")
	assert.Error(t, err)

	_, _, err = run(t, "generate")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	good := writeSite(t, "good.json", synth.Synthesize(synth.Input{Name: "Acme", BusinessType: extract.TypeMedical}))
	stdout, _, err := run(t, "validate", good)
	require.NoError(t, err)
	var report validate.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.Valid)

	badCfg := synth.Synthesize(synth.Input{Name: "Acme"})
	badCfg.Pages.Home.Features = nil
	bad := writeSite(t, "bad.yaml", badCfg)
	stdout, _, err = run(t, "validate", bad)
	var rejected *validate.RejectedError
	require.ErrorAs(t, err, &rejected)
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.Valid)

	_, _, err = run(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSanitizeCommand(t *testing.T) {
	cfg := synth.Synthesize(synth.Input{Name: "Acme"})
	cfg.Pages.Home.Hero.Subtitle = `Hello <img src=x onerror="alert(1)">world`
	cfg.Pages.Home.Hero.CTA = &types.CTA{Primary: &types.Link{Text: "Docs", Href: "https://docs.other.io/start"}}
	in := writeSite(t, "in.json", cfg)
	out := filepath.Join(t.TempDir(), "out.json")

	stdout, stderr, err := run(t, "sanitize", "--allow-domain", "acme.dev", "--out", out, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+out)
	assert.Contains(t, stderr, "warning:")

	got, err := store.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, got.Pages.Home.Hero.Subtitle, "onerror")
	assert.Equal(t, "/", got.Pages.Home.Hero.CTA.Primary.Href)
}

func TestRefineRequiresOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	in := writeSite(t, "in.json", synth.Synthesize(synth.Input{Name: "Acme"}))
	_, _, err := run(t, "refine", in)
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestTypesCommand(t *testing.T) {
	stdout, _, err := run(t, "types")
	require.NoError(t, err)
	for _, bt := range extract.AllTypes() {
		assert.Contains(t, stdout, bt.Label())
	}
	assert.Contains(t, stdout, "(fallback)")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestReportRejected(t *testing.T) {
	report := validate.Report{Valid: false, Errors: []string{"pages.home.features: required"}}

	tests := []struct {
		name      string
		failWrite bool
		wantPrint string
	}{
		{name: "report printed", wantPrint: "pages.home.features"},
		{name: "print failure joined", failWrite: true, wantPrint: "failed to print report"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var err error
			if tt.failWrite {
				err = reportRejected(failingWriter{}, report, report.Err())
				assert.ErrorContains(t, err, tt.wantPrint)
				assert.ErrorContains(t, err, "disk full")
			} else {
				err = reportRejected(&buf, report, report.Err())
				assert.Contains(t, buf.String(), tt.wantPrint)
			}
			var rejected *validate.RejectedError
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, report.Errors, rejected.Report.Errors)
		})
	}
}
