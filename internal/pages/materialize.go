// Package pages writes an accepted site configuration out as one file per page.
package pages

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"sitegen_server/internal/types"
	"sitegen_server/internal/validate"
)

// ManifestFile holds the full configuration next to the page files.
const ManifestFile = "site.json"

// Materialize validates cfg and writes one file per present page into dir,
// named by the page identity (the home page becomes "index"). Rejected
// configurations write nothing.
func Materialize(dir string, cfg *types.SiteConfiguration, r Renderer) ([]types.PageFile, error) {
	if err := validate.Validate(cfg).Err(); err != nil {
		return nil, err
	}
	if r == nil {
		r = JSONRenderer{}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	var written []types.PageFile
	for _, key := range cfg.Pages.Keys() {
		data, err := r.Render(cfg, key, cfg.Pages.Page(key))
		if err != nil {
			return written, err
		}
		name := types.PageIdentity(key) + r.Extension()
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return written, fmt.Errorf("failed to write page %s: %w", name, err)
		}
		written = append(written, types.PageFile{Key: key, Filename: name, Type: r.Type(), Size: len(data)})
	}

	manifest, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return written, fmt.Errorf("failed to marshal site manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), manifest, 0644); err != nil {
		return written, fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}
	written = append(written, types.PageFile{Key: "site", Filename: ManifestFile, Type: "json", Size: len(manifest)})

	log.Printf("Info: materialized %q into %s: %d files", cfg.Name, dir, len(written))
	return written, nil
}
