// Package catalog is the read-only product catalog and the query engine over it.
//
// A Catalog is built once from seed data and never mutated afterwards, so it
// can be shared by any number of goroutines without locking. Every method
// returns fresh slices; callers may modify results freely.
package catalog

import (
	"errors"
	"fmt"

	"github.com/chemalert/chemalert/internal/domain"
)

// ErrNotFound is returned by GetByID when no product carries the id
var ErrNotFound = errors.New("product not found")

// Catalog is an immutable, ordered product snapshot
type Catalog struct {
	products []domain.Product
	index    map[string]int
}

// New validates products and builds a catalog preserving their order
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if prev, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate product id %q (first at %d)", i, p.ID, prev)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

// MustNew is New for static seed data that is known to be valid
func MustNew(products []domain.Product) *Catalog {
	c, err := New(products)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// ListAll returns every product in catalog order
func (c *Catalog) ListAll() []domain.Product {
	return c.filter(func(domain.Product) bool { return true })
}

// GetByID returns the product with id, or ErrNotFound
func (c *Catalog) GetByID(id string) (domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return c.products[i].Clone(), nil
}

// Featured returns the first n products; n <= 0 yields none
func (c *Catalog) Featured(n int) []domain.Product {
	if n <= 0 {
		return []domain.Product{}
	}
	if n > len(c.products) {
		n = len(c.products)
	}
	out := make([]domain.Product, 0, n)
	for _, p := range c.products[:n] {
		out = append(out, p.Clone())
	}
	return out
}

// Similar returns up to n other products from the same category as id.
// An unknown id yields ErrNotFound.
func (c *Catalog) Similar(id string, n int) ([]domain.Product, error) {
	p, err := c.GetByID(id)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	out := make([]domain.Product, 0, n)
	for _, other := range c.products {
		if len(out) >= n {
			break
		}
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other.Clone())
		}
	}
	return out, nil
}

// filter is the stable filter every query is built on
func (c *Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
