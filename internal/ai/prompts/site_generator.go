package prompts

import (
	"fmt"
	"strings"
)

// SiteSystemPrompt is shared by every model-backed generator.
const SiteSystemPrompt = `You are a website content planner. You answer with a single JSON object and nothing else.`

// GetSiteGenerationPrompt builds the user prompt for a fresh configuration.
func GetSiteGenerationPrompt(userPrompt string, maxFeatures int, businessType string) string {
	var hints []string
	if maxFeatures > 0 {
		hints = append(hints, fmt.Sprintf("Use exactly %d home page features.", maxFeatures))
	}
	if businessType != "" {
		hints = append(hints, fmt.Sprintf("The business category is %q.", businessType))
	}

	return fmt.Sprintf(`
		A user described the website they want:

		---
		%s
		---

		Produce the site configuration as JSON with this shape:

		`+"```json"+`
		{
		  "name": "business name (max 100 chars)",
		  "description": "one sentence (max 200 chars)",
		  "pages": {
		    "home": {
		      "hero": {"title": "max 60 chars, 8 words or fewer", "subtitle": "max 300 chars",
		               "cta": {"primary": {"text": "max 50 chars", "href": "/contact"}}},
		      "features": [{"title": "max 50 chars", "description": "max 120 chars", "icon": "one emoji"}]
		    },
		    "about": {"hero": {...}, "blurb": "max 500 chars"},
		    "contact": {"hero": {...}, "emailPlaceholder": "max 100 chars"},
		    "services": {"hero": {...}, "services": [{"title": "...", "description": "...", "features": ["..."]}]}
		  }
		}
		`+"```"+`

		Rules:
		1.  Home is required and has between 1 and 6 features.
		2.  Include about, contact or services only when the user asks for them.
		3.  Links are site-relative paths such as /about or #features.
		4.  Never include credentials, keys, tokens, passwords or markup.
		%s

		Only return the JSON object.
	`, userPrompt, strings.Join(hints, "\n\t\t"))
}
