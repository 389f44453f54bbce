package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML catalog file (a list of products) into an in-memory
// catalog. Used by the CLI and by tests; a host application will usually
// supply its own Lookup backed by real storage.
func LoadFile(path string) (*InMemory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []*Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	c := NewInMemory()
	for i, p := range products {
		if err := c.Add(p); err != nil {
			return nil, fmt.Errorf("catalog entry #%d: %w", i+1, err)
		}
	}
	return c, nil
}
