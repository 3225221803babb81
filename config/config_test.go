package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "heuristic", cfg.Generator)
	assert.True(t, cfg.FallbackToHeuristic)
	assert.Equal(t, 2000, cfg.MaxPromptLength)
	assert.Equal(t, 3, cfg.MaxFeatures)
	assert.True(t, cfg.AllowExternalLinks)
	assert.Equal(t, 2048, cfg.MaxURLLength)
	assert.Equal(t, 30*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, 10*time.Minute, cfg.ReplayWindow)
	assert.Empty(t, cfg.Domains())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
SERVER_ADDRESS: ":9090"
MAX_FEATURES: 5
ALLOWED_DOMAINS: "acme.dev, example.com ,"
REMOTE_TIMEOUT: 5s
`), 0644))
	t.Setenv("MAX_FEATURES", "4")
	t.Setenv("SANITIZE", "false")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 4, cfg.MaxFeatures)
	assert.False(t, cfg.Sanitize)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, []string{"acme.dev", "example.com"}, cfg.Domains())
}

func TestValidateGeneratorRequirements(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"heuristic", Config{Generator: "heuristic"}, false},
		{"remote without endpoint", Config{Generator: "remote"}, true},
		{"remote", Config{Generator: "remote", RemoteEndpoint: "http://gen"}, false},
		{"openai without key", Config{Generator: "openai"}, true},
		{"gemini without key", Config{Generator: "gemini"}, true},
		{"unknown", Config{Generator: "markov"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfigRejectsUnknownGenerator(t *testing.T) {
	t.Setenv("GENERATOR", "markov")
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}
