package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sitegen_server/internal/types"
)

// FileStore keeps one file per configuration in Dir. Format is "json"
// (default) or "yaml".
type FileStore struct {
	Dir    string
	Format string
}

func NewFileStore(dir, format string) (*FileStore, error) {
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "yaml" {
		return nil, fmt.Errorf("unsupported store format %q", format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{Dir: dir, Format: format}, nil
}

func (s *FileStore) Save(ctx context.Context, id string, cfg *types.SiteConfiguration) error {
	if err := checkSave(id, cfg); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, id+"."+s.Format)
	if err := WriteFile(path, cfg); err != nil {
		return err
	}
	log.Printf("Info: stored configuration %s at %s", id, path)
	return nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*types.SiteConfiguration, error) {
	if !idPattern.MatchString(id) {
		return nil, ErrNotFound
	}
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		cfg, err := ReadFile(filepath.Join(s.Dir, id+ext))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return nil, ErrNotFound
}

// ReadFile decodes a configuration file, choosing YAML or JSON by extension.
func ReadFile(path string) (*types.SiteConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg types.SiteConfiguration
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &cfg, nil
}

// WriteFile encodes cfg to path, choosing YAML or JSON by extension. The
// write goes through a temporary file so readers never see a partial file.
func WriteFile(path string, cfg *types.SiteConfiguration) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
