package taxonomy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// document mirrors the YAML layout of a taxonomy file.
type document struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
	Synonyms map[string]string `yaml:"synonyms"`
}

// Parse decodes a YAML taxonomy. Unknown fields are rejected.
func Parse(data []byte) (*Taxonomy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTaxonomy)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidTaxonomy, err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidTaxonomy)
	}

	categories := make([]Category, len(doc.Categories))
	for i, c := range doc.Categories {
		categories[i] = Category{Name: c.Name, Keywords: c.Keywords}
	}
	return New(categories, doc.Synonyms)
}

// Load reads a YAML taxonomy from path.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTaxonomy, err)
	}
	return Parse(data)
}

// LoadOrDefault loads path, or returns the embedded default when path is empty.
func LoadOrDefault(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
