package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Extraction is what the heuristics could infer from a prompt. An empty Name
// means no candidate was found.
type Extraction struct {
	Name          string       `json:"name,omitempty"`
	BusinessType  BusinessType `json:"businessType"`
	WantsAbout    bool         `json:"wantsAbout"`
	WantsContact  bool         `json:"wantsContact"`
	WantsServices bool         `json:"wantsServices"`
}

const (
	// A dot may only sit between word characters ("U.S"), so a sentence end or
	// an abbreviation like "Co." always closes the phrase.
	capWord = `[A-Z](?:[\w'-]|\.[\w'-])*`
	// A run of capitalised words, allowing "&" and capitalised words after the first.
	capPhrase = capWord + `(?:\s+(?:&|[A-Z](?:[\w&'-]|\.[\w&'-])*))*`
)

// namePatterns are tried in priority order. Group 1 holds the candidate.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`["“]([^"“”]+)["”]`),
	regexp.MustCompile(`\b(?i:for|called|named)\s+(` + capPhrase + `)(?:\s+(?:company|corp|inc|llc|studio|agency|co)\b)?`),
	regexp.MustCompile(`\b(` + capPhrase + `)\s+(?i:studio|agency|consulting|design|development)\b`),
}

var (
	leadingArticle = regexp.MustCompile(`(?i)^(?:the|a|an)\s+`)
	trailingSuffix = regexp.MustCompile(`(?i)[\s,]+(?:inc|llc|ltd|corp|co|company)\.?$`)
)

const (
	minNameLen = 2  // exclusive
	maxNameLen = 50 // exclusive
)

// Extract runs every heuristic over the prompt. It never fails; anything it
// cannot infer is left at its zero value or the fallback business type.
func Extract(prompt string) Extraction {
	lower := strings.ToLower(prompt)
	return Extraction{
		Name:          ExtractName(prompt),
		BusinessType:  Classify(prompt),
		WantsAbout:    strings.Contains(lower, "about"),
		WantsContact:  strings.Contains(lower, "contact"),
		WantsServices: strings.Contains(lower, "service"),
	}
}

// ExtractName returns the first acceptable name candidate, or "".
func ExtractName(prompt string) string {
	for _, re := range namePatterns {
		for _, m := range re.FindAllStringSubmatch(prompt, -1) {
			name := normalizeName(m[1])
			n := utf8.RuneCountInString(name)
			if n > minNameLen && n < maxNameLen {
				return name
			}
		}
	}
	return ""
}

func normalizeName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = leadingArticle.ReplaceAllString(s, "")
	s = strings.TrimRight(s, ".,;:!?&- ")
	s = trailingSuffix.ReplaceAllString(s, "")
	return strings.TrimRight(s, ".,;:!?&- ")
}
