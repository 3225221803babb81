package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"sitegen_server/internal/types"
)

// ErrEmptyOutput means the model answered with nothing usable.
var ErrEmptyOutput = errors.New("model returned empty output")

// wrapperKeys are keys models sometimes nest the configuration under.
var wrapperKeys = []string{"config", "configuration", "site", "data", "result", "output"}

// parseSiteConfig extracts a configuration from raw model output. It accepts
// fenced code blocks, a bare object or an object wrapped under a common key.
func parseSiteConfig(output string) (*types.SiteConfiguration, error) {
	cleaned := strings.TrimSpace(output)
	if i := strings.Index(cleaned, "```"); i >= 0 {
		cleaned = cleaned[i+3:]
		cleaned = strings.TrimPrefix(cleaned, "json")
		if j := strings.LastIndex(cleaned, "```"); j >= 0 {
			cleaned = cleaned[:j]
		}
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil, ErrEmptyOutput
	}

	var cfg types.SiteConfiguration
	err := json.Unmarshal([]byte(cleaned), &cfg)
	if err == nil && looksLikeConfig(&cfg) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse model JSON output: %w", err)
	}

	log.Printf("Info: model output is not a bare configuration, trying wrapped keys")
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON output: %w", err)
	}
	for _, key := range wrapperKeys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var inner types.SiteConfiguration
		if err := json.Unmarshal(raw, &inner); err == nil && looksLikeConfig(&inner) {
			log.Printf("Info: parsed model output wrapped under key '%s'", key)
			return &inner, nil
		}
	}
	return nil, errors.New("model output did not contain a site configuration")
}

func looksLikeConfig(cfg *types.SiteConfiguration) bool {
	return cfg.Name != "" || cfg.Pages.Home != nil
}
