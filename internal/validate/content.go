package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"sitegen_server/internal/types"
)

// MaxHeroTitleWords is the advisory word budget for the home hero title.
const MaxHeroTitleWords = 8

var wordRE = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)?`)

// WordCount counts words in s.
func WordCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	return len(wordRE.FindAllString(s, -1))
}

// ContentResult is advisory. Valid is false whenever a warning fired, but a
// failing content check never blocks acceptance.
type ContentResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// Content runs the content-quality heuristics.
func Content(cfg *types.SiteConfiguration) ContentResult {
	var warnings []string
	if cfg != nil && cfg.Pages.Home != nil {
		home := cfg.Pages.Home
		if home.Hero != nil {
			if n := WordCount(home.Hero.Title); n > MaxHeroTitleWords {
				warnings = append(warnings, fmt.Sprintf("pages.home.hero.title: has %d words, aim for %d or fewer", n, MaxHeroTitleWords))
			}
		}
		for i, f := range home.Features {
			if n := utf8.RuneCountInString(f.Description); n > types.MaxFeatureDescLength {
				warnings = append(warnings, fmt.Sprintf("pages.home.features[%d].description: is %d characters, keep it within %d", i, n, types.MaxFeatureDescLength))
			}
		}
	}
	return ContentResult{Valid: len(warnings) == 0, Warnings: warnings}
}
