package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/canopyhq/canopy/pkg/domain"
)

// file is the YAML document shape for a catalog artifact.
type file struct {
	Questions []domain.QuestionNode `yaml:"questions"`
}

// Load reads a catalog from a YAML document.
func Load(r io.Reader) (*Catalog, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return New(doc.Questions)
}

// LoadFile reads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
