// Package defaults loads the reference catalog, option list and rate table
// the service seeds itself with.
package defaults

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/movequote/movequote/internal/catalog"
	"github.com/movequote/movequote/internal/options"
	"github.com/movequote/movequote/internal/rates"
)

//go:embed defaults.yaml
var embedded []byte

// Set is the parsed reference data.
type Set struct {
	Catalog []catalog.Category `yaml:"catalog"`
	Options []options.Option   `yaml:"options"`
	Rates   rates.Table        `yaml:"rates"`
}

// Load parses the file at path, or the embedded defaults when path is empty.
func Load(path string) (*Set, error) {
	data := embedded
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading defaults %s: %w", path, err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes a defaults document. Unknown keys are rejected; flat item
// costs start at zero and are only set through the API.
func Parse(data []byte) (*Set, error) {
	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing defaults: %w", err)
	}
	if len(set.Catalog) == 0 {
		return nil, fmt.Errorf("parsing defaults: catalog is empty")
	}
	return &set, nil
}
