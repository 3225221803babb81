package prompts

import (
	"fmt"
	"strings"
)

// GetSiteRefinePrompt asks the model to fix a configuration. problems are the
// validator's messages; instruction is an optional user request.
func GetSiteRefinePrompt(currentJSON string, problems []string, instruction string) (string, string) {
	if instruction == "" {
		instruction = "Fix the problems listed below and keep everything else unchanged."
	}
	list := "none"
	if len(problems) > 0 {
		list = "- " + strings.Join(problems, "\n\t\t- ")
	}

	prompt := fmt.Sprintf(`
		User's instruction:
		---
		%s
		---

		Current site configuration:
		---
		%s
		---

		Problems reported by the validator:
		%s

		Respond with the complete corrected configuration in the same JSON shape.
	`, instruction, currentJSON, list)

	system := `
		You are an editor correcting an existing website configuration.
		Respond ONLY with the corrected JSON object.
	`
	return prompt, system
}
