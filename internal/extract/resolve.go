package extract

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ResolveBusinessType maps a user supplied type (e.g. from a CLI flag) onto a
// known BusinessType. Exact names and keywords win; otherwise the best fuzzy
// match over names and keywords is used.
func ResolveBusinessType(input string) (BusinessType, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return "", fmt.Errorf("business type is empty")
	}
	if t := BusinessType(in); t.Valid() {
		return t, nil
	}

	var candidates []string
	var owners []BusinessType
	for _, t := range AllTypes() {
		candidates = append(candidates, string(t))
		owners = append(owners, t)
		for _, kw := range t.Keywords() {
			if kw == in {
				return t, nil
			}
			candidates = append(candidates, kw)
			owners = append(owners, t)
		}
	}

	matches := fuzzy.Find(in, candidates)
	if len(matches) == 0 {
		return "", fmt.Errorf("unknown business type %q (known: %s)", input, joinTypes(AllTypes()))
	}
	return owners[matches[0].Index], nil
}

func joinTypes(ts []BusinessType) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
