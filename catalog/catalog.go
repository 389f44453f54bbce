// Package catalog defines the product lookup collaborator the BOM engine
// reads from. The engine only resolves parts by identifier; creating and
// persisting catalog records is owned by external storage.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a part identifier has no catalog record.
var ErrNotFound = errors.New("product not found")

// Product is the catalog metadata for one orderable part.
type Product struct {
	// Part is the manufacturer part number and the lookup key.
	Part         string `yaml:"part"`
	Manufacturer string `yaml:"manufacturer"`
	Description  string `yaml:"description"`
	// DeviceRole is the part's role in the network, if any.
	DeviceRole string `yaml:"device_role"`
	// ListPrice is the optional GPL price.
	ListPrice *decimal.Decimal `yaml:"list_price"`
	// Discount is the optional customer discount as a decimal fraction.
	Discount *decimal.Decimal `yaml:"discount"`
}

// Lookup resolves part identifiers to catalog metadata.
type Lookup interface {
	// Product returns the record for a part, or ErrNotFound.
	Product(part string) (*Product, error)
}

// InMemory implements Lookup using an in-memory map.
// Safe for concurrent use.
type InMemory struct {
	products map[string]*Product
	mu       sync.RWMutex
}

// NewInMemory creates an empty in-memory catalog.
func NewInMemory() *InMemory {
	return &InMemory{products: make(map[string]*Product)}
}

// Add inserts a product, keyed by its part number.
func (c *InMemory) Add(p *Product) error {
	if p.Part == "" {
		return fmt.Errorf("product is missing a part number")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.products[p.Part]; exists {
		return fmt.Errorf("product with part %s already exists", p.Part)
	}
	c.products[p.Part] = p
	return nil
}

// Product returns the record for a part, or ErrNotFound.
func (c *InMemory) Product(part string) (*Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, exists := c.products[part]
	if !exists {
		return nil, fmt.Errorf("part %s: %w", part, ErrNotFound)
	}
	return p, nil
}

// Len returns the number of products in the catalog.
func (c *InMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
