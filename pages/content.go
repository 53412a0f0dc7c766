package pages

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed content/insights.yaml
var defaultContent []byte

// Content is the static text of the insights card.
type Content struct {
	Columns []ContentColumn `yaml:"columns"`
}

// ContentColumn is one column of text blocks.
type ContentColumn struct {
	Blocks []ContentBlock `yaml:"blocks"`
}

// ContentBlock is a heading with its bullet points.
type ContentBlock struct {
	Title  string   `yaml:"title"`
	Points []string `yaml:"points"`
}

// LoadContent reads the insights text from path, or the built-in text when
// path is empty.
func LoadContent(path string) (*Content, error) {
	data := defaultContent
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("pages: read content: %w", err)
		}
		data = raw
	}
	return ParseContent(data)
}

// ParseContent decodes a YAML content document.
func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("pages: parse content: %w", err)
	}
	for i, col := range c.Columns {
		for j, b := range col.Blocks {
			if b.Title == "" {
				return nil, fmt.Errorf("pages: content column %d block %d has no title", i, j)
			}
		}
	}
	return &c, nil
}
