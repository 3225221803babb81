package pages

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"sitegen_server/internal/types"
)

// Renderer turns one page into file contents. Template engines plug in here.
type Renderer interface {
	// Type names the output format, e.g. "json".
	Type() string
	// Extension is appended to the page identity, e.g. ".json".
	Extension() string
	Render(site *types.SiteConfiguration, key string, page any) ([]byte, error)
}

// pageDocument is what the built-in renderers emit for each page.
type pageDocument struct {
	Site        string `json:"site" yaml:"site"`
	Description string `json:"description" yaml:"description"`
	Page        string `json:"page" yaml:"page"`
	Content     any    `json:"content" yaml:"content"`
}

func newPageDocument(site *types.SiteConfiguration, key string, page any) pageDocument {
	return pageDocument{Site: site.Name, Description: site.Description, Page: key, Content: page}
}

// JSONRenderer writes each page as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Type() string      { return "json" }
func (JSONRenderer) Extension() string { return ".json" }

func (JSONRenderer) Render(site *types.SiteConfiguration, key string, page any) ([]byte, error) {
	data, err := json.MarshalIndent(newPageDocument(site, key, page), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render %s as json: %w", key, err)
	}
	return append(data, '\n'), nil
}

// YAMLRenderer writes each page as YAML.
type YAMLRenderer struct{}

func (YAMLRenderer) Type() string      { return "yaml" }
func (YAMLRenderer) Extension() string { return ".yaml" }

func (YAMLRenderer) Render(site *types.SiteConfiguration, key string, page any) ([]byte, error) {
	data, err := yaml.Marshal(newPageDocument(site, key, page))
	if err != nil {
		return nil, fmt.Errorf("render %s as yaml: %w", key, err)
	}
	return data, nil
}

// RendererFor returns the built-in renderer for format ("json" or "yaml").
func RendererFor(format string) (Renderer, error) {
	switch format {
	case "", "json":
		return JSONRenderer{}, nil
	case "yaml", "yml":
		return YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown page format %q", format)
	}
}
