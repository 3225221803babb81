// Package store persists accepted site configurations.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

// ErrNotFound is returned by Load for an unknown id.
var ErrNotFound = errors.New("site configuration not found")

// Store saves and loads configurations by id. Save refuses configurations
// that fail validation.
type Store interface {
	Save(ctx context.Context, id string, cfg *types.SiteConfiguration) error
	Load(ctx context.Context, id string) (*types.SiteConfiguration, error)
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// checkSave is the gate every Store runs before writing.
func checkSave(id string, cfg *types.SiteConfiguration) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid configuration id %q", id)
	}
	return validate.Validate(cfg).Err()
}
