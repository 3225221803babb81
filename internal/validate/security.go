package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"sitegen_server/internal/types"
)

// SecurityFinding records which field matched which sensitive pattern. The
// matched text itself is never kept.
type SecurityFinding struct {
	Field   string `json:"field"`
	Pattern string `json:"pattern"`
}

func (f SecurityFinding) String() string {
	return fmt.Sprintf("%s: contains sensitive content (%s)", f.Field, f.Pattern)
}

type sensitivePattern struct {
	Name string
	Re   *regexp.Regexp
}

var sensitivePatterns = []sensitivePattern{
	{Name: "api key", Re: regexp.MustCompile(`(?i)api[\s_-]?key`)},
	{Name: "secret", Re: regexp.MustCompile(`(?i)secret`)},
	{Name: "password", Re: regexp.MustCompile(`(?i)passw(?:or)?d`)},
	{Name: "token", Re: regexp.MustCompile(`(?i)token`)},
	{Name: "private key", Re: regexp.MustCompile(`(?i)private[\s_-]?key`)},
	{Name: "hex string", Re: regexp.MustCompile(`(?i)[a-f0-9]{32,}`)},
}

// Security serializes cfg and scans every string value for credential-shaped
// text. Any finding is fatal.
func Security(cfg *types.SiteConfiguration) []SecurityFinding {
	if cfg == nil {
		return nil
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return []SecurityFinding{{Field: "config", Pattern: "unserializable"}}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []SecurityFinding{{Field: "config", Pattern: "unserializable"}}
	}

	var findings []SecurityFinding
	walkStrings("", doc, func(path, value string) {
		for _, p := range sensitivePatterns {
			if p.Re.MatchString(value) {
				findings = append(findings, SecurityFinding{Field: path, Pattern: p.Name})
			}
		}
	})
	return findings
}

// walkStrings calls fn for every string leaf in a decoded JSON document.
// Object keys are visited in sorted order so results are stable.
func walkStrings(path string, v any, fn func(path, value string)) {
	switch x := v.(type) {
	case string:
		fn(path, x)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child := k
			if path != "" {
				child = path + "." + k
			}
			walkStrings(child, x[k], fn)
		}
	case []any:
		for i, item := range x {
			walkStrings(fmt.Sprintf("%s[%d]", path, i), item, fn)
		}
	}
}
